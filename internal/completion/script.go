package completion

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var scripts = template.Must(template.New("completion").Funcs(template.FuncMap{
	"join":         strings.Join,
	"namePattern":  namePattern,
	"commandWords": commandWords,
	"flagWords":    flagWords,
	"zshQuote":     zshQuote,
	"zshFlag":      zshFlag,
	"fishQuote":    fishQuote,
	"fishFlag":     fishFlag,
}).ParseFS(templatesFS, "templates/*.tmpl"))

type valueFlag struct {
	Pattern string
	Flag    FlagInfo
}

type scriptData struct {
	Prog       string
	Globals    []FlagInfo
	Commands   []CommandInfo
	ValueFlags []valueFlag
}

// Script writes the completion script for shell to w.
func Script(w io.Writer, shell, prog string) error {
	shell = strings.ToLower(strings.TrimSpace(shell))
	tmpl := scripts.Lookup(shell + ".tmpl")
	if tmpl == nil {
		return fmt.Errorf("unsupported shell: %s (supported: %s)", shell, strings.Join(Shells(), ", "))
	}
	data := scriptData{
		Prog:       prog,
		Globals:    GlobalFlags(),
		Commands:   Commands(),
		ValueFlags: valueFlags(GlobalFlags(), Commands()),
	}
	return tmpl.Execute(w, data)
}

// valueFlags collects flags taking a value. A short alias is only matched
// when no boolean flag shares it.
func valueFlags(globals []FlagInfo, commands []CommandInfo) []valueFlag {
	all := append([]FlagInfo{}, globals...)
	for _, c := range commands {
		all = append(all, c.Flags...)
	}

	boolShorts := make(map[string]bool)
	for _, f := range all {
		if !f.HasValue && f.Short != "" {
			boolShorts[f.Short] = true
		}
	}

	var out []valueFlag
	seen := make(map[string]bool)
	for _, f := range all {
		if !f.HasValue || seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		pattern := "--" + f.Name
		if f.Short != "" && !boolShorts[f.Short] {
			pattern += "|-" + f.Short
		}
		out = append(out, valueFlag{Pattern: pattern, Flag: f})
	}
	return out
}

func namePattern(c CommandInfo) string {
	return strings.Join(c.Names(), "|")
}

func commandWords(commands []CommandInfo) string {
	words := make([]string, 0, len(commands))
	for _, c := range commands {
		words = append(words, c.Name)
	}
	return strings.Join(words, " ")
}

func flagWords(flags []FlagInfo) string {
	words := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		words = append(words, "--"+f.Name)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

func zshQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

var zshDescEscaper = strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)

func zshFlag(prog string, f FlagInfo) string {
	var b strings.Builder
	if f.Short != "" {
		fmt.Fprintf(&b, "'(-%s --%s)'{-%s,--%s}'", f.Short, f.Name, f.Short, f.Name)
	} else {
		fmt.Fprintf(&b, "'--%s", f.Name)
	}
	fmt.Fprintf(&b, "[%s]", zshDescEscaper.Replace(f.Description))
	if f.HasValue {
		fmt.Fprintf(&b, ":%s:", f.ValueHint)
		switch {
		case len(f.Values) > 0:
			fmt.Fprintf(&b, "(%s)", strings.Join(f.Values, " "))
		case f.ValuesCommand != "":
			fmt.Fprintf(&b, "($(%s %s 2>/dev/null))", prog, f.ValuesCommand)
		case strings.Contains(f.ValueHint, "="):
		default:
			b.WriteString("_files")
		}
	}
	b.WriteString("'")
	return b.String()
}

func fishQuote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s) + "'"
}

func fishFlag(prog string, f FlagInfo) string {
	parts := []string{"-l", f.Name}
	if f.Short != "" {
		parts = append(parts, "-s", f.Short)
	}
	parts = append(parts, "-d", fishQuote(f.Description))
	if f.HasValue {
		parts = append(parts, "-r")
		switch {
		case len(f.Values) > 0:
			parts = append(parts, "-a", fishQuote(strings.Join(f.Values, " ")))
		case f.ValuesCommand != "":
			parts = append(parts, "-a", fmt.Sprintf("'(%s %s 2>/dev/null)'", prog, f.ValuesCommand))
		default:
			parts = append(parts, "-F")
		}
	}
	return strings.Join(parts, " ")
}
