package target

import (
	"log/slog"

	tgt "github.com/Manu343726/escarabajo/pkg/target"
	"github.com/Manu343726/escarabajo/pkg/target/transport"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var profilePath string

// TargetCmd groups the commands that talk to a debugged target
var TargetCmd = &cobra.Command{
	Use:   "target",
	Short: "Inspect and exercise a debugged RISC-V target",
	Long: `Commands that connect to a RISC-V target and work with its register set.

Without real hardware attached, the commands run against a built-in loopback
transport that behaves like an idle hart, which is enough to inspect the
register map, the synthesized vector/matrix types and the caching behavior.

The hardware shape of the target comes from a YAML profile, e.g.:

  xlen: 64
  extensions: imafdv
  vlenb: 16
  mlenb: 64
  mrlenb: 8
  mamul: 2
  expose_csrs: [mscratch, mtvec, "0x7c8"]`,
}

func init() {
	TargetCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "", "hardware profile YAML file")
}

// demoProfile is the target shape used when no profile file is given
func demoProfile() tgt.Info {
	return tgt.Info{
		XLen:       64,
		Extensions: "imafdv",
		Vlenb:      16,
		Mlenb:      64,
		Mrlenb:     8,
		Mamul:      2,
	}
}

// connect attaches to the loopback target described by the --profile flag,
// the config file, or the demo profile, in that order.
func connect() (*tgt.Target, *transport.Loopback, error) {
	info := demoProfile()

	if profilePath == "" {
		profilePath = viper.GetString("profile")
	}
	if profilePath != "" {
		loaded, err := tgt.LoadProfile(profilePath)
		if err != nil {
			return nil, nil, err
		}
		info = loaded
	}

	loopback := transport.NewLoopback()

	t, err := tgt.Connect("riscv.cpu0", info, loopback, slog.Default())
	if err != nil {
		return nil, nil, err
	}

	return t, loopback, nil
}
