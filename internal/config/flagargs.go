package config

import (
	"flag"
	"os"
	"strings"
)

// filterArgs keeps only the allowed flags (and their values) from args, so
// each parsing stage can run its own FlagSet without tripping over flags it
// does not know. Both "-f value" and "--flag=value" forms are handled.
func filterArgs(args []string, allowed ...string) []string {
	ok := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		ok[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			if _, keep := ok[strings.SplitN(arg, "=", 2)[0]]; keep {
				out = append(out, arg)
			}
			continue
		}

		if _, keep := ok[arg]; keep {
			out = append(out, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				out = append(out, args[i+1])
				i++
			}
		}
	}
	return out
}

// configFileFromArgs extracts the JSON config file path from -c/-config,
// ignoring every other argument. Empty when neither flag is present.
func configFileFromArgs(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(filterArgs(args, "-c", "-config"))

	return path
}

// osArgs is a test seam for os.Args.
var osArgs = func() []string { return os.Args[1:] }
