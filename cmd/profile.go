package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show, export, or import the academic profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the academic profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		if err := e.requireUser(); err != nil {
			return err
		}

		p, err := e.client.GetProfile(ctxOf(cmd))
		if err != nil {
			return fmt.Errorf("load profile: %s", api.Message(err))
		}
		printProfile(cmd, p)
		return nil
	},
}

func printProfile(cmd *cobra.Command, p *api.Profile) {
	w := cmdOut(cmd)
	info := p.AcademicInfo
	field(w, "User", bold(p.Username))
	field(w, "Email", p.Email)
	field(w, "CGPA", orDash(info.GPA))
	field(w, "Major", orDash(info.Major))

	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Education"))
	if len(info.Education) == 0 {
		fmt.Fprintln(w, gray("  none"))
	}
	for i, edu := range info.Education {
		fmt.Fprintf(w, "  %d. %s", i+1, edu.Degree)
		if edu.Specialization != "" {
			fmt.Fprintf(w, " in %s", edu.Specialization)
		}
		fmt.Fprintf(w, ", %s (%s) %s\n", edu.Institution, edu.Year, gray("CGPA "+edu.CGPA))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Certifications"))
	if len(info.Certificates) == 0 {
		fmt.Fprintln(w, gray("  none"))
	}
	for i, c := range info.Certificates {
		fmt.Fprintf(w, "  %d. %s, %s", i+1, c.Name, c.Issuer)
		if c.Year != "" {
			fmt.Fprintf(w, " (%s)", c.Year)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Skills"))
	if len(info.Skills) == 0 {
		fmt.Fprintln(w, gray("  none"))
	}
	for _, s := range info.Skills {
		fmt.Fprintln(w, "  • "+s)
	}
}

var profileExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the academic profile as YAML (- for stdout)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		if err := e.requireUser(); err != nil {
			return err
		}

		p, err := e.client.GetProfile(ctxOf(cmd))
		if err != nil {
			return fmt.Errorf("load profile: %s", api.Message(err))
		}

		if args[0] == "-" {
			return profile.Export(cmdOut(cmd), p.AcademicInfo)
		}
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create %s: %w", args[0], err)
		}
		defer f.Close()
		if err := profile.Export(f, p.AcademicInfo); err != nil {
			return err
		}
		fmt.Fprintf(cmdOut(cmd), "Profile written to %s\n", args[0])
		return nil
	},
}

var profileImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the academic profile with a YAML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		if err := e.requireUser(); err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()
		info, err := profile.Import(f)
		if err != nil {
			return err
		}

		ed := profile.NewEditor()
		ed.Replace(info)
		if err := ed.Save(ctxOf(cmd), e.client); err != nil {
			return fmt.Errorf("save profile: %s", api.Message(err))
		}
		fmt.Fprintln(cmdOut(cmd), green("Profile updated successfully!"))
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileExportCmd)
	profileCmd.AddCommand(profileImportCmd)
}
