// Package websocket pushes live session state to browser and desktop
// clients.
//
// The package uses a hub-and-spoke model. A central Hub tracks connected
// clients grouped by session ID, and each connection gets a read and a
// write goroutine with ping/pong keepalive.
//
// The socket is one-directional: clients drive the game over
// the REST API (input, answers, dismissals) and the socket only carries
// server pushes. The game service's tick runner calls BroadcastState
// whenever the simulation produces a visible change, so a spectator tab
// and the player's own tab render the same run without polling.
//
// Clients connect to /ws?session=<id>; the API server validates the
// session before handing the request to Hub.ServeWS.
package websocket
