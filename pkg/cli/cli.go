package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/term"
)

type Value interface {
	String() string
	Set(string) error
	Get() any
}

type stringValue struct{ p *string }

func (v *stringValue) Set(s string) error { *v.p = s; return nil }
func (v *stringValue) String() string     { return *v.p }
func (v *stringValue) Get() any           { return *v.p }

type boolValue struct{ p *bool }

func (v *boolValue) Set(s string) error {
	val, err := strconv.ParseBool(s)
	if err != nil && s != "" {
		return fmt.Errorf("invalid boolean value '%s': %w", s, err)
	}
	*v.p = val || s == ""
	return nil
}
func (v *boolValue) String() string { return strconv.FormatBool(*v.p) }
func (v *boolValue) Get() any       { return *v.p }

type Flag struct {
	Name         string
	Shorthand    string
	Usage        string
	Value        Value
	DefValue     string
	ExpectedType string
}

// FlagGroupEntry is one toggle in a prefixed group, e.g. -Wfoo / -Wno-foo.
type FlagGroupEntry struct {
	Name     string
	Prefix   string
	Usage    string
	Enabled  *bool
	Disabled *bool
}

type FlagGroup struct {
	Name      string
	GroupType string
	Header    string
	Flags     []FlagGroupEntry
}

type FlagSet struct {
	name       string
	flags      map[string]*Flag
	shorthands map[string]*Flag
	args       []string
	flagGroups []FlagGroup
}

func NewFlagSet(name string) *FlagSet {
	return &FlagSet{
		name:       name,
		flags:      make(map[string]*Flag),
		shorthands: make(map[string]*Flag),
	}
}

func (f *FlagSet) Args() []string { return f.args }

func (f *FlagSet) Lookup(name string) *Flag { return f.flags[name] }

func (f *FlagSet) String(p *string, name, shorthand, value, usage, expectedType string) {
	*p = value
	f.Var(&stringValue{p}, name, shorthand, usage, value, expectedType)
}

func (f *FlagSet) Bool(p *bool, name, shorthand string, value bool, usage string) {
	*p = value
	f.Var(&boolValue{p}, name, shorthand, usage, strconv.FormatBool(value), "")
}

func (f *FlagSet) Var(value Value, name, shorthand, usage, defValue, expectedType string) {
	if name == "" {
		panic("flag name cannot be empty")
	}
	flag := &Flag{Name: name, Shorthand: shorthand, Usage: usage, Value: value, DefValue: defValue, ExpectedType: expectedType}
	if _, ok := f.flags[name]; ok {
		panic(fmt.Sprintf("flag redefined: %s", name))
	}
	f.flags[name] = flag
	if shorthand != "" {
		if _, ok := f.shorthands[shorthand]; ok {
			panic(fmt.Sprintf("shorthand flag redefined: %s", shorthand))
		}
		f.shorthands[shorthand] = flag
	}
}

// AddFlagGroup registers an enable and a "no-" disable flag for every
// entry and records the group for the help page.
func (f *FlagSet) AddFlagGroup(name, groupType, header string, entries []FlagGroupEntry) {
	for i := range entries {
		if entries[i].Enabled != nil {
			f.Bool(entries[i].Enabled, entries[i].Prefix+entries[i].Name, "", *entries[i].Enabled, entries[i].Usage)
		}
		if entries[i].Disabled != nil {
			f.Bool(entries[i].Disabled, entries[i].Prefix+"no-"+entries[i].Name, "", *entries[i].Disabled, "Disable '"+entries[i].Name+"'")
		}
	}
	f.flagGroups = append(f.flagGroups, FlagGroup{Name: name, GroupType: groupType, Header: header, Flags: entries})
}

func (f *FlagSet) Parse(arguments []string) error {
	f.args = []string{}
	for i := 0; i < len(arguments); i++ {
		arg := arguments[i]
		if len(arg) < 2 || arg[0] != '-' {
			f.args = append(f.args, arg)
			continue
		}
		if arg == "--" {
			f.args = append(f.args, arguments[i+1:]...)
			break
		}
		var err error
		if strings.HasPrefix(arg, "--") {
			err = f.parseLongFlag(arg, arguments, &i)
		} else {
			err = f.parseShortFlag(arg, arguments, &i)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *FlagSet) parseLongFlag(arg string, arguments []string, i *int) error {
	name, inline, hasInline := strings.Cut(arg[2:], "=")
	if name == "" {
		return fmt.Errorf("empty flag name")
	}
	flag, ok := f.flags[name]
	if !ok {
		return fmt.Errorf("unknown flag: --%s", name)
	}
	if hasInline {
		return flag.Value.Set(inline)
	}
	if _, isBool := flag.Value.(*boolValue); isBool {
		return flag.Value.Set("")
	}
	if *i+1 >= len(arguments) {
		return fmt.Errorf("flag needs an argument: --%s", name)
	}
	*i++
	return flag.Value.Set(arguments[*i])
}

func (f *FlagSet) parseShortFlag(arg string, arguments []string, i *int) error {
	// Full-name single-dash spelling first (-Wfoo, -Fno-bar, -Wall).
	name, inline, hasInline := strings.Cut(arg[1:], "=")
	if flag, ok := f.flags[name]; ok {
		if hasInline {
			return flag.Value.Set(inline)
		}
		if _, isBool := flag.Value.(*boolValue); isBool {
			return flag.Value.Set("")
		}
		if *i+1 >= len(arguments) {
			return fmt.Errorf("flag needs an argument: -%s", name)
		}
		*i++
		return flag.Value.Set(arguments[*i])
	}

	shorthand := arg[1:2]
	flag, ok := f.shorthands[shorthand]
	if !ok {
		return fmt.Errorf("unknown flag: -%s", name)
	}
	if _, isBool := flag.Value.(*boolValue); isBool {
		return flag.Value.Set("")
	}
	if value := arg[2:]; value != "" {
		return flag.Value.Set(value)
	}
	if *i+1 >= len(arguments) {
		return fmt.Errorf("flag needs an argument: -%s", shorthand)
	}
	*i++
	return flag.Value.Set(arguments[*i])
}

type App struct {
	Name        string
	Synopsis    string
	Description string
	Authors     []string
	Repository  string
	FlagSet     *FlagSet
	Action      func(args []string) error
}

func NewApp(name string) *App {
	return &App{
		Name:    name,
		FlagSet: NewFlagSet(name),
	}
}

func (a *App) Run(arguments []string) error {
	help := false
	a.FlagSet.Bool(&help, "help", "h", false, "Display this information")

	if err := a.FlagSet.Parse(arguments); err != nil {
		fmt.Fprintln(os.Stderr, err)
		a.generateUsagePage(os.Stderr)
		return err
	}
	if help {
		a.generateHelpPage(os.Stdout)
		return nil
	}
	if a.Action != nil {
		return a.Action(a.FlagSet.Args())
	}
	return nil
}

func (a *App) generateUsagePage(w *os.File) {
	fmt.Fprintf(w, "Usage: %s %s\n", a.Name, a.Synopsis)
	fmt.Fprintf(w, "Run '%s --help' for all available options and flags.\n", a.Name)
}

func (a *App) generateHelpPage(w *os.File) {
	var sb strings.Builder
	termWidth := getTerminalWidth()

	if len(a.Authors) > 0 {
		fmt.Fprintf(&sb, "%s, by %s\n", a.Name, strings.Join(a.Authors, ", "))
	}
	if a.Repository != "" {
		fmt.Fprintf(&sb, "For more details refer to %s\n", a.Repository)
	}

	if a.Synopsis != "" {
		fmt.Fprintf(&sb, "\n  Synopsis\n    %s %s\n", a.Name, a.Synopsis)
	}
	if a.Description != "" {
		fmt.Fprintf(&sb, "\n  Description\n")
		for _, line := range wrapText(a.Description, termWidth-4) {
			fmt.Fprintf(&sb, "    %s\n", line)
		}
	}

	optionFlags := a.getOptionFlags()
	leftWidth := 0
	for _, flag := range optionFlags {
		if w := len(formatFlagString(flag)); w > leftWidth {
			leftWidth = w
		}
	}
	for _, group := range a.FlagSet.flagGroups {
		for _, entry := range group.Flags {
			if w := len(entry.Prefix + "no-" + entry.Name); w > leftWidth {
				leftWidth = w
			}
		}
	}

	if len(optionFlags) > 0 {
		fmt.Fprintf(&sb, "\n  Options\n")
		sort.Slice(optionFlags, func(i, j int) bool { return optionFlags[i].Name < optionFlags[j].Name })
		for _, flag := range optionFlags {
			formatEntry(&sb, termWidth, leftWidth, formatFlagString(flag), flag.Usage)
		}
	}

	for _, group := range a.FlagSet.flagGroups {
		fmt.Fprintf(&sb, "\n  %s\n", group.Name)
		prefix := group.Flags[0].Prefix
		fmt.Fprintf(&sb, "    -%s<%s>, -%sno-<%s>  Enable or disable a specific %s\n",
			prefix, group.GroupType, prefix, group.GroupType, group.GroupType)
		if group.Header != "" {
			fmt.Fprintf(&sb, "  %s\n", group.Header)
		}
		entries := make([]FlagGroupEntry, len(group.Flags))
		copy(entries, group.Flags)
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
		for _, entry := range entries {
			mark := "|-|"
			if entry.Enabled != nil && *entry.Enabled && (entry.Disabled == nil || !*entry.Disabled) {
				mark = "|x|"
			}
			formatEntry(&sb, termWidth, leftWidth, entry.Name, entry.Usage+" "+mark)
		}
	}
	fmt.Fprint(w, sb.String())
}

func (a *App) getOptionFlags() []*Flag {
	var optionFlags []*Flag
	for _, flag := range a.FlagSet.flags {
		if a.isGroupFlag(flag.Name) {
			continue
		}
		optionFlags = append(optionFlags, flag)
	}
	return optionFlags
}

func (a *App) isGroupFlag(flagName string) bool {
	for _, group := range a.FlagSet.flagGroups {
		for _, entry := range group.Flags {
			if flagName == entry.Prefix+entry.Name || flagName == entry.Prefix+"no-"+entry.Name {
				return true
			}
		}
	}
	return false
}

func formatFlagString(flag *Flag) string {
	var sb strings.Builder
	_, isBool := flag.Value.(*boolValue)
	if flag.Shorthand != "" {
		fmt.Fprintf(&sb, "-%s, ", flag.Shorthand)
	}
	fmt.Fprintf(&sb, "--%s", flag.Name)
	if !isBool && flag.ExpectedType != "" {
		fmt.Fprintf(&sb, " <%s>", flag.ExpectedType)
	}
	return sb.String()
}

func formatEntry(sb *strings.Builder, termWidth, leftWidth int, left, usage string) {
	avail := termWidth - leftWidth - 6
	if avail < 10 {
		avail = 10
	}
	lines := wrapText(usage, avail)
	if len(lines) == 0 {
		lines = []string{""}
	}
	fmt.Fprintf(sb, "    %-*s %s\n", leftWidth, left, lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintf(sb, "    %-*s %s\n", leftWidth, "", line)
	}
}

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	if width < 20 {
		return 20
	}
	return width
}

func wrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current strings.Builder
	for _, word := range words {
		if current.Len() > 0 && current.Len()+1+len(word) > maxWidth {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
