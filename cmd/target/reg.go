package target

import (
	"fmt"
	"strconv"

	"github.com/Manu343726/escarabajo/pkg/target/regcache"
	"github.com/Manu343726/escarabajo/pkg/utils"
	"github.com/spf13/cobra"
)

var regCmd = &cobra.Command{
	Use:   "reg <name> [value]",
	Short: "Read or write one target register",
	Long: `Reads a register by name, or writes it when a value is given.

The access goes through the register cache: a second read of a cacheable
register is served from the cache without touching the transport, which can
be observed with --verbose.

Example:
  escarabajo target reg a0
  escarabajo target reg a0 0xdeadbeef`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runReg,
}

func init() {
	TargetCmd.AddCommand(regCmd)
}

func runReg(cmd *cobra.Command, args []string) error {
	t, _, err := connect()
	if err != nil {
		return err
	}
	defer t.Disconnect()

	name := args[0]

	var reg *regcache.Entry
	for _, entry := range t.Registers() {
		if entry.Name() == name {
			reg = entry
			break
		}
	}
	if reg == nil {
		return fmt.Errorf("no register named %q on this target", name)
	}

	number := reg.Number()

	if len(args) == 2 {
		value, err := strconv.ParseUint(args[1], 0, 64)
		if err != nil {
			return fmt.Errorf("bad register value %q: %v", args[1], err)
		}

		buf := make([]byte, reg.Type().TotalBytes())
		utils.PutUint(buf, value)

		if err := t.WriteRegister(number, buf); err != nil {
			colorError.Printf("write failed: %v\n", err)
			return err
		}
	}

	value, err := t.ReadRegister(number)
	if err != nil {
		colorError.Printf("read failed: %v\n", err)
		return err
	}

	colorReg.Printf("%s ", name)
	colorValue.Println(utils.Hex(value))
	return nil
}
