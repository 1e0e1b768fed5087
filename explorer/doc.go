// Package explorer drives one agent through a maze it cannot see.
//
// An Explorer owns the agent's radar, explored mask, recent-position
// history and current plan, and moves through four states:
//
//	Idle ──StartExploration──▶ Exploring ──(no reachable frontier)──▶ Done
//	  ▲                           │
//	  └──────StopExploration──────┘
//	Idle/Done ──GoHome/GoToNearestExit──▶ Navigating ──(plan exhausted)──▶ Done
//
// The caller drives time: every Step moves the agent at most one cell, and
// nothing happens between calls. Cancellation is a state change between
// steps.
//
// While exploring, each Step enumerates the frontier, sorts it by Manhattan
// distance and moves one cell along the first A* path of two or more cells.
// The cell it leaves is remembered (unless already among the last three) so
// the next searches penalize stepping back onto it. When the frontier is
// exhausted the free border cells far enough from the start become the exits.
//
// Every accepted move, manual or planned, increments the move counter,
// extends the trail and rescans from the new cell.
//
// Errors:
//
//   - ErrBusy:          a command that conflicts with the current state.
//   - ErrNoExits:       GoToNearestExit before exploration found any exits.
//   - ErrPlanCorrupted: a planned step was rejected; navigation was aborted.
//     It means the grid and the plan disagree and should never occur.
//
// Unreachable goals are not errors: GoHome and GoToNearestExit return a nil
// path.
package explorer
