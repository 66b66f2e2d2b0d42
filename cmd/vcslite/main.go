// cmd/vcslite/main.go
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vcslite/internal/config"
	"vcslite/internal/logging"
	"vcslite/internal/repo"
)

var cfg *config.Config
var logger *logging.Logger

var rootCmd = &cobra.Command{
	Use:   "vcslite",
	Short: "vcslite is a miniature distributed version-control system",
	Long: `vcslite tracks snapshots of a working directory as a DAG of commits,
supports named branches, and synchronizes with sibling repositories
reachable as local filesystem paths.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(".vcsliterc.json")
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if !cfg.Color {
			color.NoColor = true
		}
		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
}

func openRepo() (*repo.Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	return repo.Open(cwd, cfg.RepoDir, logger)
}

func init() {
	var initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a new repository in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			r, err := repo.Init(cwd, cfg.RepoDir, logger)
			if err != nil {
				return err
			}
			return r.Close()
		},
	}

	var addCmd = &cobra.Command{
		Use:   "add <file>",
		Short: "Stage a file's current contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			return r.Add(args[0])
		},
	}

	var commitCmd = &cobra.Command{
		Use:   "commit <message>",
		Short: "Record a new commit from HEAD plus staged changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			_, err = r.Commit(args[0])
			return err
		},
	}

	var rmCmd = &cobra.Command{
		Use:   "rm <file>",
		Short: "Unstage and/or stage a file for removal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			return r.Rm(args[0])
		},
	}

	var logCmd = &cobra.Command{
		Use:   "log",
		Short: "Print the commit history from HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			entries, err := r.Log()
			if err != nil {
				return err
			}
			printLog(entries)
			return nil
		},
	}

	var globalLogCmd = &cobra.Command{
		Use:   "global-log",
		Short: "Print every commit in the object store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			entries, err := r.GlobalLog()
			if err != nil {
				return err
			}
			printLog(entries)
			return nil
		},
	}

	var findCmd = &cobra.Command{
		Use:   "find <message>",
		Short: "Print the id of every commit with an exact message match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			ids, err := r.Find(args[0])
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Println("Found no commit with that message.")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}

	var statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show branches, staged changes, and working-tree state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			report, err := r.Status()
			if err != nil {
				return err
			}
			printStatus(report)
			return nil
		},
	}

	var checkoutCmd = &cobra.Command{
		Use:   "checkout [<commit>] -- <file> | <branch>",
		Short: "Switch branches, restore a file, or reset a file to an earlier commit",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			switch {
			case len(args) == 2 && args[0] == "--":
				return r.CheckoutFile(args[1])
			case len(args) == 3 && args[1] == "--":
				return r.CheckoutCommitFile(args[0], args[2])
			case len(args) == 1:
				return r.CheckoutBranch(args[0])
			default:
				return fmt.Errorf("usage: checkout -- <file> | checkout <commit> -- <file> | checkout <branch>")
			}
		},
	}

	var branchCmd = &cobra.Command{
		Use:   "branch <name>",
		Short: "Create a new branch at HEAD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			return r.CreateBranch(args[0])
		},
	}

	var rmBranchCmd = &cobra.Command{
		Use:   "rm-branch <name>",
		Short: "Delete a branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			return r.RemoveBranch(args[0])
		},
	}

	var resetCmd = &cobra.Command{
		Use:   "reset <commit>",
		Short: "Reset the current branch and working tree to a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			return r.Reset(args[0])
		},
	}

	var mergeCmd = &cobra.Command{
		Use:   "merge <branch>",
		Short: "Three-way merge a branch into the current branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			result, err := r.Merge(args[0])
			if err != nil {
				return err
			}
			printMergeResult(result)
			return nil
		},
	}

	var addRemoteCmd = &cobra.Command{
		Use:   "add-remote <name> <path>",
		Short: "Record a filesystem path as a named remote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			return r.AddRemote(args[0], args[1])
		},
	}

	var rmRemoteCmd = &cobra.Command{
		Use:   "rm-remote <name>",
		Short: "Remove a named remote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			return r.RemoveRemote(args[0])
		},
	}

	var pushCmd = &cobra.Command{
		Use:   "push <remote> <branch>",
		Short: "Copy the local HEAD's ancestry to a remote branch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			return r.Push(args[0], args[1])
		},
	}

	var fetchCmd = &cobra.Command{
		Use:   "fetch <remote> <branch>",
		Short: "Copy a remote branch's ancestry into a local tracking branch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			_, err = r.Fetch(args[0], args[1])
			return err
		},
	}

	var pullCmd = &cobra.Command{
		Use:   "pull <remote> <branch>",
		Short: "Fetch then merge a remote branch into the current branch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			result, err := r.Pull(args[0], args[1])
			if err != nil {
				return err
			}
			printMergeResult(result)
			return nil
		},
	}

	rootCmd.AddCommand(initCmd, addCmd, commitCmd, rmCmd, logCmd, globalLogCmd, findCmd,
		statusCmd, checkoutCmd, branchCmd, rmBranchCmd, resetCmd, mergeCmd,
		addRemoteCmd, rmRemoteCmd, pushCmd, fetchCmd, pullCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Println(red(err.Error()))
		os.Exit(1)
	}
}
