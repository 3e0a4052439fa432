package target

import (
	"fmt"

	"github.com/Manu343726/escarabajo/pkg/target/regtypes"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var describeXml bool

var (
	colorReg    = color.New(color.FgGreen)
	colorNum    = color.New(color.FgCyan)
	colorType   = color.New(color.FgYellow)
	colorAbsent = color.New(color.FgHiBlack)
	colorHeader = color.New(color.FgWhite, color.Bold, color.Underline)
	colorValue  = color.New(color.FgWhite, color.Bold)
	colorError  = color.New(color.FgRed, color.Bold)
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show the register map of the target",
	Long: `Connects to the target, builds its register cache and prints the resulting
register map: number, name, width and synthesized type of every register.

With --xml, prints the target description document instead, the way a remote
protocol client would receive it.`,
	Args: cobra.NoArgs,
	RunE: runDescribe,
}

func init() {
	TargetCmd.AddCommand(describeCmd)
	describeCmd.Flags().BoolVar(&describeXml, "xml", false, "print the target description XML document")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	t, _, err := connect()
	if err != nil {
		return err
	}
	defer t.Disconnect()

	if describeXml {
		fmt.Print(t.Description())
		return nil
	}

	colorHeader.Printf("%-6s %-10s %-8s %s\n", "num", "name", "bits", "type")

	for _, entry := range t.Registers() {
		if !entry.Exists() {
			colorAbsent.Printf("%-6d %-10s %-8s not implemented\n", entry.Number(), entry.Name(), "-")
			continue
		}

		typeID := entry.Type().ID
		if entry.Type().Kind == regtypes.Kind_Union {
			typeID = fmt.Sprintf("%s (%d views)", typeID, len(entry.Type().Fields))
		}

		colorNum.Printf("%-6d ", entry.Number())
		colorReg.Printf("%-10s ", entry.Name())
		fmt.Printf("%-8d ", entry.Type().TotalBits())
		colorType.Println(typeID)
	}

	return nil
}
