package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerlens/internal/profile"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the choices offered by the profile form",
}

var catalogInstitutionsCmd = &cobra.Command{
	Use:   "institutions",
	Short: "List institutions (optionally for one state)",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _ := cmd.Flags().GetString("state")

		states := profile.States()
		if state != "" {
			if !slices.Contains(states, state) {
				return fmt.Errorf("unknown state %q (known: %s)", state, strings.Join(states, ", "))
			}
			states = []string{state}
		}

		fmt.Fprintf(cmdOut(cmd), "%-14s  %s\n", "State", "Institution")
		fmt.Fprintln(cmdOut(cmd), strings.Repeat("─", 90))

		n := 0
		for _, s := range states {
			for _, inst := range profile.Institutions(s) {
				if inst == profile.OtherInstitution {
					continue
				}
				fmt.Fprintf(cmdOut(cmd), "%-14s  %s\n", s, inst)
				n++
			}
		}
		fmt.Fprintf(cmdOut(cmd), "\n%d institutions. Choose %q to type any other name.\n", n, profile.OtherInstitution)
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:       "list <degrees|specializations|cgpa|years|states>",
	Short:     "List one of the fixed choice sets",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"degrees", "specializations", "cgpa", "years", "states"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var items []string
		switch args[0] {
		case "degrees":
			items = profile.Degrees
		case "specializations":
			items = profile.Specializations
		case "cgpa":
			items = profile.CGPARanges
		case "years":
			items = profile.GraduationYears(time.Now().Year())
		case "states":
			items = profile.States()
		default:
			return fmt.Errorf("unknown list %q", args[0])
		}
		for _, it := range items {
			fmt.Fprintln(cmdOut(cmd), it)
		}
		return nil
	},
}

func init() {
	catalogInstitutionsCmd.Flags().String("state", "", "Only list institutions in this state")

	catalogCmd.AddCommand(catalogInstitutionsCmd)
	catalogCmd.AddCommand(catalogListCmd)
}
