// acmatch scans text for the keywords of a keyword list file.
package main

import (
	"os"

	"github.com/sansecio/acmatch/cmd/acmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := cmd.ExitCode(err); code >= 0 {
			os.Exit(code)
		}
		os.Exit(2)
	}
}
