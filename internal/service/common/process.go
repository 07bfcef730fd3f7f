//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"os"
	"strings"

	"github.com/mitchellh/go-ps"
)

// javaExecutables are the process names a running server shows up under.
var javaExecutables = map[string]struct{}{ //nolint:gochecknoglobals // Read-only lookup table.
	"java":      {},
	"java.exe":  {},
	"javaw.exe": {},
}

// RunningJavaProcesses returns the PIDs of java processes other than this one.
func RunningJavaProcesses() ([]int, error) {
	processList, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	return filterJava(processList, os.Getpid()), nil
}

func filterJava(processList []ps.Process, selfPID int) []int {
	var pids []int

	for _, process := range processList {
		if process.Pid() == selfPID {
			continue
		}

		if _, found := javaExecutables[strings.ToLower(process.Executable())]; !found {
			continue
		}

		pids = append(pids, process.Pid())
	}

	return pids
}
