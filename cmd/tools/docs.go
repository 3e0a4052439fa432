package tools

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Manu343726/escarabajo/pkg/target/regs"
	"github.com/Manu343726/escarabajo/pkg/utils"
	"github.com/spf13/cobra"
)

var module string
var supportedModules = map[string]func() string{
	"target.cacheability": cacheabilityDoc,
	"target.registers":    registersDoc,
}

var docsCmd = &cobra.Command{
	Use:   "docs module",
	Short: "Show escarabajo documentation",
	Long: `Dumps the documentation of the specified escarabajo module.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.

Supported modules:
` + strings.Join(utils.Map(sortedModules(), func(module string) string { return "  " + module }), "\n"),
	Args:      cobra.MatchAll(cobra.OnlyValidArgs, cobra.MaximumNArgs(1), cobra.MinimumNArgs(1)),
	ValidArgs: sortedModules(),
	Run: func(cmd *cobra.Command, args []string) {
		module = args[0]
		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			file, err := os.Create(outputFile)
			if err != nil {
				fmt.Println("Error creating file:", err)
				os.Exit(1)
			}
			defer file.Close()
			fmt.Fprintln(file, supportedModules[module]())
		} else {
			fmt.Println(supportedModules[module]())
		}
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}

func sortedModules() []string {
	modules := utils.Keys(supportedModules)
	sort.Strings(modules)
	return modules
}

// cacheabilityDoc renders the register cacheability policy as a table, so it
// can be reviewed side by side with the debug spec it encodes.
func cacheabilityDoc() string {
	b := &strings.Builder{}

	b.WriteString("Register cacheability policy\n")
	b.WriteString("============================\n\n")
	b.WriteString("read cacheable:  a value just read will read the same until the debugger changes it\n")
	b.WriteString("write cacheable: a value just written will read back exactly as written\n\n")
	fmt.Fprintf(b, "%-12s %-14s %-6s %-6s\n", "register", "class", "read", "write")

	for regno := regs.RegNo(0); regno < regs.FixedCount; regno++ {
		fmt.Fprintf(b, "%-12s %-14s %-6v %-6v\n",
			regno.Name(), regs.ClassOf(regno),
			regs.IsCacheable(regno, false), regs.IsCacheable(regno, true))
	}

	fmt.Fprintf(b, "%-12s %-14s %-6v %-6v\n",
		"csr*", regs.ClassOf(regs.CsrRegNo(0x7c8)),
		false, false)

	return b.String()
}

// registersDoc renders the fixed register numbering
func registersDoc() string {
	b := &strings.Builder{}

	b.WriteString("Fixed register numbering\n")
	b.WriteString("========================\n\n")
	fmt.Fprintf(b, "%-6s %s\n", "num", "name")

	for regno := regs.RegNo(0); regno < regs.FixedCount; regno++ {
		fmt.Fprintf(b, "%-6d %s\n", regno, regno.Name())
	}

	fmt.Fprintf(b, "%-6s dynamically exposed CSRs\n", fmt.Sprintf("%d+", uint32(regs.FixedCount)))

	return b.String()
}
