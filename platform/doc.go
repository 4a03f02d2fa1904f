// Package platform connects the game to the educational platform that
// authors its quizzes and records its scores.
//
// The platform owns teachers, classes, game instances, and the questions
// a teacher writes for each instance. The game only needs a narrow slice
// of that: fetch the question set for a game instance, insert a score row
// when a run finishes, and read the leaderboard. The Store interface
// captures exactly that slice.
//
// Implementations:
//
//   - MySQLStore talks directly to the platform database, reading the
//     game_questions table and writing scores. Used when the game server
//     is deployed next to the platform.
//   - Client talks to a running platform backend over HTTP, using the
//     same routes the web frontend uses. Used when the game server runs
//     standalone.
//   - MemoryStore keeps everything in memory, for tests and development
//     mode with no platform at all.
//
// Schema:
//
// The relevant platform tables are:
//
//	game_questions(question_id, game_id, question_text,
//	               choice_a, choice_b, choice_c, choice_d, correct_answer)
//	scores(student_fid, game_id, score, time_taken)
//	student(student_fid, student_name, student_surname, student_username)
//
// Leaderboards order by score descending, then time ascending, and cap at
// 50 rows.
package platform
