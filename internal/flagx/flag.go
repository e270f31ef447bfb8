// Package flagx lets several configuration layers share one command line.
// Each layer extracts only the flags it owns before handing them to its own
// flag.FlagSet, so unknown flags from other layers never cause parse errors.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// normalize maps "--name" to "-name"; the standard flag package accepts both.
func normalize(name string) string {
	if strings.HasPrefix(name, "--") {
		return name[1:]
	}
	return name
}

// FilterArgs keeps the allowed flags from args together with their values.
// Values may be attached ("-c=conf.json") or follow as the next argument
// ("-c conf.json"). A following argument that itself starts with "-" is not
// consumed as a value. Double-dash spellings match their single-dash form.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[normalize(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, attached := strings.Cut(arg, "=")
		if _, ok := allowed[normalize(name)]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if attached {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// ConfigPathFrom returns the JSON config path given with -c or -config in
// args, or "" when neither is present.
func ConfigPathFrom(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}

// JsonConfigFlags is ConfigPathFrom applied to the process arguments.
func JsonConfigFlags() string {
	return ConfigPathFrom(os.Args[1:])
}
