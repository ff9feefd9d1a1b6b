package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/backup"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/catalog"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/fetch"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/git"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/install"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/logging"
)

var (
	installAll      bool
	installForce    bool
	installNoBackup bool
	installGlobal   bool
	installTarget   string
	installFrom     string
)

func init() {
	installCmd.Flags().BoolVar(&installAll, "all", false,
		"install every entity in the source tree")
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false,
		"overwrite entities already present in the target")
	installCmd.Flags().BoolVar(&installNoBackup, "no-backup", false,
		"skip backing up overwritten files")
	installCmd.Flags().BoolVarP(&installGlobal, "global", "g", false,
		"install into the user-global OpenCode configuration")
	installCmd.Flags().StringVarP(&installTarget, "target", "t", ".",
		"project directory receiving the .opencode/ tree")
	installCmd.Flags().StringVar(&installFrom, "from", "",
		"install from a directory, .tar.gz archive URL, or git URL instead of the configured source")
	installCmd.MarkFlagsMutuallyExclusive("global", "target")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install [token...]",
	Short: "Install entities into an OpenCode configuration",
	Long: `Copy selected entities from a source tree into an OpenCode
configuration directory.

Project installs land in <target>/.opencode/ (default target: the current
directory); --global installs into the user's OpenCode config dir instead.
Inside the target, agents go to agent/, commands to commands/, and skills
to skill/<name>/ with their whole directory.

Tokens select what to install (agent:architect, skill:planning). With no
tokens on a terminal an interactive picker opens; --all installs
everything. Existing destinations are refused unless --force is given, in
which case the overwritten files are captured in a backup set first.

The source defaults to the configured tree; --from accepts a different
directory, a .tar.gz archive URL (downloaded with retries and cached), or
a git URL (shallow-cloned).`,
	Example: `  # Install two entities into ./.opencode/
  ockit install agent:architect skill:planning

  # Pick interactively from a remote archive
  ockit install --from https://example.com/opencode-kit.tar.gz

  # Mirror a whole tree into the global config
  ockit install --all --global --force

  See Also: ockit list, ockit backup list`,
	RunE: runInstall,
}

func runInstall(c *cobra.Command, args []string) error {
	return runInstallWithWriter(c, args, os.Stdout)
}

func runInstallWithWriter(c *cobra.Command, args []string, w io.Writer) error {
	conf := effectiveConfig()
	logger := logging.FromContext(c.Context())

	root, cleanup, err := resolveInstallSource(c, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	target, err := resolveInstallTarget()
	if err != nil {
		return err
	}

	scanner := scannerFromConfig(c)

	var matches []catalog.Match
	switch {
	case installAll:
		matches = allMatches(scanner, root)
		if len(matches) == 0 {
			return errors.NewUserError(errors.Newf("no entities found in %s", root), "Run: ockit list")
		}
	case len(args) > 0:
		for _, token := range args {
			if install.LooksLikePath(token) || install.MightBePath(token) {
				return errors.NewUserError(
					errors.Newf("%q is a path, not a selector", token),
					"Select entities as category:name; --from switches the source tree")
			}
		}
		matches, err = resolveTokens(scanner, root, args)
		if err != nil {
			return err
		}
	default:
		if !interactiveTerminal() {
			return errors.NewUserError(errors.New("no entities selected"),
				"Pass category:name tokens, or --all")
		}
		matches, err = pickMatches(allMatches(scanner, root))
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			fmt.Fprintln(w, "Nothing selected.")
			return nil
		}
	}

	doBackup := conf.Backup.Enabled && !installNoBackup
	var mgr *backup.Manager
	if doBackup {
		mgr = backup.NewManager(backup.WithRetention(conf.Backup.Retention))
	}

	installer := install.New(logger, mgr, install.Options{
		Force:  installForce,
		Backup: doBackup,
	})

	report, err := installer.Install(matches, target)
	if err != nil {
		if errors.Is(err, errors.ErrAlreadyExists) {
			return errors.NewUserError(err,
				"Re-run with --force to overwrite (overwritten files are backed up first)")
		}
		return err
	}

	for _, item := range report.Items {
		fmt.Fprintf(w, "%s✓ installed %s%s -> %s\n", colorGreen, item.Selector, colorReset, item.Dest)
	}
	if report.BackupID != "" {
		fmt.Fprintf(w, "%sOverwritten files saved as backup set %s%s\n", colorGray, report.BackupID, colorReset)
	}

	return nil
}

// resolveInstallSource turns the --from flag into a local directory to scan,
// fetching archives and cloning git repositories as needed. The returned
// cleanup removes any temporary checkout.
func resolveInstallSource(c *cobra.Command, logger *slog.Logger) (string, func(), error) {
	nop := func() {}

	from := installFrom
	if from == "" {
		return effectiveSource(), nop, nil
	}

	switch {
	case fetch.IsArchiveURL(from):
		dir, err := fetch.New(logger).Fetch(c.Context(), from)
		if err != nil {
			return "", nop, errors.NewSystemError(err, "Check the archive URL and network connectivity")
		}
		return fetch.SourceRoot(dir), func() { os.RemoveAll(dir) }, nil

	case git.IsURL(from):
		if err := git.ValidateURL(from); err != nil {
			return "", nop, errors.NewUserError(err, "Use an https:// or git@host:path.git repository URL")
		}
		dir, err := os.MkdirTemp("", "ockit-clone-*")
		if err != nil {
			return "", nop, errors.Wrap(err, "creating clone directory")
		}
		if err := git.Clone(from, dir, 1); err != nil {
			os.RemoveAll(dir)
			return "", nop, errors.NewSystemError(err, "Check the repository URL and your git credentials")
		}
		return dir, func() { os.RemoveAll(dir) }, nil

	default:
		info, err := os.Stat(from)
		if err != nil || !info.IsDir() {
			return "", nop, errors.NewUserError(
				errors.Newf("%s is not a directory, .tar.gz URL, or git URL", from),
				"Pass --from a source tree root or a fetchable URL")
		}
		return from, nop, nil
	}
}

func resolveInstallTarget() (install.Target, error) {
	if installGlobal {
		return install.GlobalTarget()
	}
	return install.ProjectTarget(installTarget), nil
}

// pickMatches opens a fuzzy multi-select over the given entities. Aborting
// the picker returns an empty selection, not an error.
func pickMatches(matches []catalog.Match) ([]catalog.Match, error) {
	if len(matches) == 0 {
		return nil, nil
	}

	indexes, err := fuzzyfinder.FindMulti(
		matches,
		func(i int) string {
			return matches[i].Selector().String()
		},
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i == -1 {
				return ""
			}
			m := matches[i]
			return fmt.Sprintf("%s\n\nCategory: %s\nSource: %s\n\n%s",
				m.Entry.Name,
				m.Category,
				m.Entry.Path,
				m.Entry.Description,
			)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	picked := make([]catalog.Match, 0, len(indexes))
	for _, idx := range indexes {
		picked = append(picked, matches[idx])
	}
	return picked, nil
}
