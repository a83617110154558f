package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/layerfs/unionfs"
)

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <path>",
		Short: "List the merged contents of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ufs, err := buildStack()
			if err != nil {
				return err
			}
			listing, err := ufs.ListDirectory(args[0], nil)
			if err != nil {
				return err
			}
			defer listing.Close()
			for name, ok := listing.Next(); ok; name, ok = listing.Next() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path>",
		Short: "Print a file from the effective layer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ufs, err := buildStack()
			if err != nil {
				return err
			}
			f, err := ufs.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			_, err = io.Copy(cmd.OutOrStdout(), f)
			return err
		},
	}
}

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat <path>",
		Short: "Show the basic attributes of a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ufs, err := buildStack()
			if err != nil {
				return err
			}
			attrs, err := ufs.ReadAttributes(args[0], unionfs.AttrViewBasic)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "name:    %s\n", attrs.Name)
			fmt.Fprintf(out, "size:    %d\n", attrs.Size)
			fmt.Fprintf(out, "mode:    %s\n", attrs.Mode)
			fmt.Fprintf(out, "modtime: %s\n", attrs.ModTime.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "dir:     %t\n", attrs.Dir)
			return nil
		},
	}
}

func newLocationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "Print the backing locations in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ufs, err := buildStack()
			if err != nil {
				return err
			}
			for i, loc := range ufs.Locations() {
				kind := "directory"
				if fi, err := os.Stat(loc); err != nil || !fi.IsDir() {
					kind = "archive"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", i, kind, loc)
			}
			return nil
		},
	}
}
