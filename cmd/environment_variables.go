package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const EnvironmentVariablePrefix = "KVBOARD_"

// SetFlagsFromEnvVariables sets flags from environment variables. Each flag
// can be set with an env variable whose name starts with `KVBOARD_`. A flag
// can alternatively be set with the contents of a file, named by an env
// variable with an additional `_FILE` suffix containing the path to the file.
func SetFlagsFromEnvVariables(fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		envVar := flagToEnvVarName(f)
		if val, present := os.LookupEnv(envVar); present {
			fs.Set(f.Name, val)
			return
		}
		// Flags already naming a file do not get the _FILE treatment.
		if strings.HasSuffix(strings.ToUpper(f.Name), "_FILE") {
			return
		}
		if path, present := os.LookupEnv(envVar + "_FILE"); present {
			contents, rerr := os.ReadFile(path)
			if rerr != nil {
				err = rerr
				return
			}
			fs.Set(f.Name, string(contents))
		}
	})
	return err
}

func flagToEnvVarName(f *pflag.Flag) string {
	return fmt.Sprintf("%s%s", EnvironmentVariablePrefix, strings.Replace(strings.ToUpper(f.Name), "-", "_", -1))
}
