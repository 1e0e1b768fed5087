// Package radarmaze is a grid-world explorer: an agent with a ray-casting
// radar maps an unknown maze, walks to the nearest unexplored frontier until
// none is left, then finds the exits and plans its way to one of them.
//
// Everything is organized under small, single-purpose packages:
//
//	occupancy/ — occupancy grid, wall rasterization (Bresenham), rays, free regions, dumps
//	mazefile/  — JSON/YAML maze documents: segments, start point, resolution
//	radar/     — 360° ray casting with a per-position scan cache
//	explored/  — explored mask marked from radar readings
//	frontier/  — frontier detection and distance ordering
//	astar/     — 4-connected A* with a soft penalty on recently visited cells
//	explorer/  — the Idle/Exploring/Navigating/Done state machine and its commands
//	config/    — YAML + .env + environment configuration, slog setup
//	server/    — HTTP sessions (gorilla/mux, rs/cors) driving explorers
//	cmd/radarmaze — build, explore and serve subcommands
//
// Quick ASCII example, the top-left corner of a 10×10 open room scanned
// from A at 90° steps ('*' explored, 'F' frontier, '·' unknown):
//
//	A * * * * *
//	* F F F F F
//	* F · · · ·
//	* F · · · ·
//
// The explorer walks toward the nearest F, rescanning after every step.
//
//	go install github.com/katalvlaran/radarmaze/cmd/radarmaze@latest
package radarmaze
