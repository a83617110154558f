// Command layerfs inspects a read-only union of directories and archives
// from the command line. Layers are supplied in mount order: the last
// --layer listed has the highest priority.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/layerfs/unionfs"
)

var (
	layerFlags []string
	verbose    bool

	log = logrus.New()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "layerfs",
		Short: "Inspect a read-only union of directories and archives",
		Long: `layerfs merges an ordered stack of directories and archives (zip, jar,
tar, tar.gz) into one read-only namespace and lets you inspect it. The
last --layer supplied has the highest priority and shadows earlier ones.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringArrayVarP(&layerFlags, "layer", "l", nil,
		"backing location (directory or archive); repeatable, last wins")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	root.AddCommand(
		newLsCmd(),
		newCatCmd(),
		newStatCmd(),
		newLocationsCmd(),
	)
	return root
}

// buildStack mounts the union from the --layer flags.
func buildStack() (*unionfs.UnionFS, error) {
	return unionfs.New(layerFlags, unionfs.WithLogger(log))
}
