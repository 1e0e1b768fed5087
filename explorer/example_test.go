package explorer_test

import (
	"fmt"

	"github.com/katalvlaran/radarmaze/explorer"
	"github.com/katalvlaran/radarmaze/occupancy"
)

// ExampleExplorer_Run explores an open room. The first scan already sees
// every cell, so exploration finishes without moving and lists the exits.
func ExampleExplorer_Run() {
	rows := make([][]uint8, 10)
	for i := range rows {
		rows[i] = make([]uint8, 10)
	}
	g, _ := occupancy.FromRows(rows)

	e, err := explorer.New(g, occupancy.Position{Row: 0, Col: 0})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	_ = e.StartExploration()
	if _, err = e.Run(100); err != nil {
		fmt.Println("error:", err)
		return
	}

	exits := e.Exits()
	fmt.Println(e.State(), e.Moves(), len(exits))
	fmt.Println(exits[0], exits[len(exits)-1])
	// Output:
	// done 0 15
	// (2,9) (9,9)
}
