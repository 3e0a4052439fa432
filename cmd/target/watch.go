package target

import (
	"fmt"
	"time"

	"github.com/Manu343726/escarabajo/pkg/target/regs"
	"github.com/Manu343726/escarabajo/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live register view of the target",
	Long: `Opens a terminal UI showing the general purpose registers and the program
counter, refreshed periodically.

The loopback target simulates a running hart: register values drift between
refreshes, and the register cache is invalidated on every tick the way a real
session invalidates it when the hart resumes. Press q or Escape to quit.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	TargetCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 500*time.Millisecond, "refresh interval")
}

func runWatch(cmd *cobra.Command, args []string) error {
	t, loopback, err := connect()
	if err != nil {
		return err
	}
	defer t.Disconnect()

	watched := make([]regs.RegNo, 0, 33)
	for regno := regs.RegNo_Zero; regno <= regs.RegNo_Pc; regno++ {
		watched = append(watched, regno)
	}

	table := tview.NewTable()
	table.SetBorder(true)
	table.SetTitle(fmt.Sprintf(" %s ", t.Name()))

	app := tview.NewApplication().SetRoot(table, true)
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	// All target access happens on the UI event goroutine: it is the session
	// thread of this target while the watch runs.
	refresh := func(tick uint64) {
		for _, regno := range watched {
			// the simulated hart keeps executing between refreshes
			if tick > 0 && regno != regs.RegNo_Zero {
				loopback.Poke(uint32(regno), tick*uint64(regno), t.Info().XLen/8)
			}
		}

		t.InvalidateAll()

		for i, regno := range watched {
			value, err := t.ReadRegister(uint32(regno))

			text := "<error>"
			if err == nil {
				text = utils.Hex(value)
			}

			table.SetCell(i, 0, tview.NewTableCell(regno.Name()).SetTextColor(tcell.ColorGreen))
			table.SetCell(i, 1, tview.NewTableCell(text).SetAlign(tview.AlignRight))
		}
	}

	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		tick := uint64(0)
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				tick++
				current := tick
				app.QueueUpdateDraw(func() { refresh(current) })
			}
		}
	}()

	refresh(0)
	err = app.Run()
	close(done)
	return err
}
