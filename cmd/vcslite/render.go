// cmd/vcslite/render.go
package main

import (
	"fmt"

	"github.com/fatih/color"

	"vcslite/internal/commitobj"
	"vcslite/internal/history"
	"vcslite/internal/repo"
	"vcslite/internal/status"
)

func printLog(entries []history.LogEntry) {
	for _, e := range entries {
		fmt.Printf("commit %s\n", e.ID)
		if e.Commit.IsMerge() {
			fmt.Printf("Merge: %s %s\n", shortID(e.Commit.Parent1), shortID(e.Commit.Parent2))
		}
		fmt.Printf("Date: %s\n", commitobj.FormatTimestamp(e.Commit.Timestamp))
		fmt.Println(e.Commit.Message)
		fmt.Println()
	}
}

func shortID(id string) string {
	if len(id) < 7 {
		return id
	}
	return id[:7]
}

func printStatus(r *status.Report) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Println("=== Branches ===")
	for _, b := range r.Branches {
		if b == r.CurrentBranch {
			fmt.Printf("*%s\n", b)
		} else {
			fmt.Println(b)
		}
	}
	fmt.Println()

	fmt.Println("=== Staged Files ===")
	for _, f := range r.Staged {
		fmt.Println(green(f))
	}
	fmt.Println()

	fmt.Println("=== Removed Files ===")
	for _, f := range r.Removed {
		fmt.Println(red(f))
	}
	fmt.Println()

	fmt.Println("=== Modifications Not Staged For Commit ===")
	for _, m := range r.Modified {
		fmt.Println(yellow(fmt.Sprintf("%s %s", m.Filename, m.Annotation)))
	}
	fmt.Println()

	fmt.Println("=== Untracked Files ===")
	for _, f := range r.Untracked {
		fmt.Println(f)
	}
	fmt.Println()
}

func printMergeResult(result *repo.MergeResult) {
	if result.Message != "" {
		fmt.Println(result.Message)
	}
}
