package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/git"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/hooks"
)

var hooksForce bool

func init() {
	hooksInstallCmd.Flags().BoolVarP(&hooksForce, "force", "f", false,
		"replace a pre-commit hook ockit did not install")
	hooksCmd.AddCommand(hooksInstallCmd)
	hooksCmd.AddCommand(hooksUninstallCmd)
	hooksCmd.AddCommand(hooksStatusCmd)
	rootCmd.AddCommand(hooksCmd)
}

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage the catalog pre-commit hook",
	Long: `Manage the git pre-commit hook that regenerates the catalog and
stages it, so every commit carries a fresh index.

The installed hook carries a marker line; ockit never removes or
replaces a hook it did not write unless --force is given.`,
	Example: `  ockit hooks install
  ockit hooks status
  ockit hooks uninstall`,
}

var hooksInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the pre-commit hook",
	Args:  cobra.NoArgs,
	RunE:  runHooksInstall,
}

var hooksUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the pre-commit hook",
	Args:  cobra.NoArgs,
	RunE:  runHooksUninstall,
}

var hooksStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report the pre-commit hook state",
	Args:  cobra.NoArgs,
	RunE:  runHooksStatus,
}

// hookOutputName resolves the catalog filename the hook will regenerate.
func hookOutputName() (string, error) {
	format, err := effectiveFormat("")
	if err != nil {
		return "", err
	}
	return effectiveOutput("", format), nil
}

func runHooksInstall(_ *cobra.Command, _ []string) error {
	return runHooksInstallWithWriter(os.Stdout)
}

func runHooksInstallWithWriter(w io.Writer) error {
	if !git.IsRepo(".") {
		return errors.NewUserError(errors.New("not inside a git repository"),
			"Run this from the repository that holds your source tree")
	}

	output, err := hookOutputName()
	if err != nil {
		return err
	}

	path, err := hooks.Install(".", output, hooksForce)
	if err != nil {
		if errors.Is(err, errors.ErrAlreadyExists) {
			return errors.NewUserError(err, "Re-run with --force to replace it")
		}
		return err
	}

	fmt.Fprintf(w, "%s✓ Installed pre-commit hook at %s%s\n", colorGreen, path, colorReset)
	fmt.Fprintf(w, "Every commit now regenerates and stages %s.\n", output)
	return nil
}

func runHooksUninstall(_ *cobra.Command, _ []string) error {
	return runHooksUninstallWithWriter(os.Stdout)
}

func runHooksUninstallWithWriter(w io.Writer) error {
	removed, err := hooks.Uninstall(".")
	if err != nil {
		return err
	}

	if removed {
		fmt.Fprintf(w, "%s✓ Removed pre-commit hook%s\n", colorGreen, colorReset)
	} else {
		fmt.Fprintln(w, "No pre-commit hook installed.")
	}
	return nil
}

func runHooksStatus(_ *cobra.Command, _ []string) error {
	return runHooksStatusWithWriter(os.Stdout)
}

func runHooksStatusWithWriter(w io.Writer) error {
	if !git.IsRepo(".") {
		fmt.Fprintln(w, "Not inside a git repository.")
		return nil
	}

	status, path, err := hooks.Check(".")
	if err != nil {
		return err
	}

	switch status {
	case hooks.StatusMissing:
		fmt.Fprintf(w, "%sNo pre-commit hook installed.%s\n", colorYellow, colorReset)
		fmt.Fprintln(w, "Install it with: ockit hooks install")

	case hooks.StatusOurs:
		output, err := hookOutputName()
		if err != nil {
			return err
		}
		fresh, err := hooks.Fresh(".", output)
		if err != nil {
			return err
		}
		if fresh {
			fmt.Fprintf(w, "%s✓ Hook installed at %s%s\n", colorGreen, path, colorReset)
		} else {
			fmt.Fprintf(w, "%s⚠ Hook at %s is out of date%s\n", colorYellow, path, colorReset)
			fmt.Fprintln(w, "Refresh it with: ockit hooks install")
		}

	case hooks.StatusForeign:
		fmt.Fprintf(w, "%s⚠ A pre-commit hook not managed by ockit exists at %s%s\n", colorYellow, path, colorReset)
		fmt.Fprintln(w, "Replace it with: ockit hooks install --force")
	}

	return nil
}
