package gitlog

import "time"

// Commit is one commit parsed from git log output.
type Commit struct {
	Hash        string
	Author      string
	AuthorEmail string
	Timestamp   time.Time
	// TimeGuessed marks commits whose header timestamp failed every parse
	// format; Timestamp then holds the collection time, not the commit time.
	TimeGuessed bool
	Message     string
	Branch      string
	Files       []string
	Insertions  int
	Deletions   int
	Repository  string
	RepoPath    string
}

// BranchSwitch is one checkout recorded in the reflog.
type BranchSwitch struct {
	Timestamp  time.Time
	FromBranch string
	ToBranch   string
	Repository string
	Actor      string
}
