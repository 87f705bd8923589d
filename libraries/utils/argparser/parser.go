// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package argparser

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	optNameValDelimChars = " =:"
	whitespaceChars      = " \r\n\t"

	helpFlag       = "help"
	helpFlagAbbrev = "h"
)

// ValidatorFromStrList returns a ValidationFunc accepting only the given strings, ignoring case.
func ValidatorFromStrList(paramName string, validStrList []string) ValidationFunc {
	errSuffix := " is not a valid option for '" + paramName + "'. valid options are: " + strings.Join(validStrList, "|")
	validStrSet := make(map[string]struct{})

	for _, str := range validStrList {
		validStrSet[strings.ToLower(str)] = struct{}{}
	}

	return func(s string) error {
		if _, ok := validStrSet[strings.ToLower(s)]; !ok {
			return errors.New(s + errSuffix)
		}

		return nil
	}
}

// ValidatorForSingleChar accepts values that are exactly one character long.
func ValidatorForSingleChar(paramName string) ValidationFunc {
	return func(s string) error {
		if len([]rune(s)) != 1 {
			return fmt.Errorf("'%s' is not a valid value for '%s'. expected a single character", s, paramName)
		}

		return nil
	}
}

type ArgParser struct {
	Name                 string
	MaxArgs              int
	TooManyArgsErrorFunc func(receivedArgs []string) error
	Supported            []*Option
	nameOrAbbrevToOpt    map[string]*Option
	ArgListHelp          [][2]string
}

// NewArgParserWithMaxArgs creates a new ArgParser for a named command that limits how many positional arguments it
// will accept.
func NewArgParserWithMaxArgs(name string, maxArgs int) *ArgParser {
	tooManyArgsErrorGenerator := func(receivedArgs []string) error {
		args := strings.Join(receivedArgs, ", ")
		if maxArgs == 0 {
			return fmt.Errorf("error: %s does not take positional arguments, but found %d: %s", name, len(receivedArgs), args)
		}
		return fmt.Errorf("error: %s has too many positional arguments. Expected at most %d, found %d: %s", name, maxArgs, len(receivedArgs), args)
	}

	return &ArgParser{
		Name:                 name,
		MaxArgs:              maxArgs,
		TooManyArgsErrorFunc: tooManyArgsErrorGenerator,
		nameOrAbbrevToOpt:    make(map[string]*Option),
	}
}

// NewArgParserWithVariableArgs creates a new ArgParser for a named command that accepts any number of positional
// arguments.
func NewArgParserWithVariableArgs(name string) *ArgParser {
	return NewArgParserWithMaxArgs(name, -1)
}

// SupportOption adds support for a new argument with the option given. Options must have a unique name and abbreviated name.
func (ap *ArgParser) SupportOption(opt *Option) {
	name := opt.Name
	abbrev := opt.Abbrev

	_, nameExist := ap.nameOrAbbrevToOpt[name]
	_, abbrevExist := ap.nameOrAbbrevToOpt[abbrev]

	if name == "" {
		panic("Name is required")
	} else if name == helpFlag || abbrev == helpFlag || name == helpFlagAbbrev || abbrev == helpFlagAbbrev {
		panic(`"help" and "h" are both reserved`)
	} else if nameExist || abbrevExist {
		panic("There is a bug.  Two supported arguments have the same name or abbreviation")
	} else if name[0] == '-' || (len(abbrev) > 0 && abbrev[0] == '-') {
		panic("There is a bug. Option names, and abbreviations should not start with -")
	} else if strings.ContainsAny(name, optNameValDelimChars) || strings.ContainsAny(name, whitespaceChars) {
		panic("There is a bug.  Option name contains an invalid character")
	}

	ap.Supported = append(ap.Supported, opt)
	ap.nameOrAbbrevToOpt[name] = opt

	if abbrev != "" {
		ap.nameOrAbbrevToOpt[abbrev] = opt
	}
}

// SupportsFlag adds support for a new flag (argument with no value).
func (ap *ArgParser) SupportsFlag(name, abbrev, desc string) *ArgParser {
	ap.SupportOption(&Option{Name: name, Abbrev: abbrev, OptType: OptionalFlag, Desc: desc})
	return ap
}

// SupportsString adds support for a new string argument with the description given.
func (ap *ArgParser) SupportsString(name, abbrev, valDesc, desc string) *ArgParser {
	ap.SupportOption(&Option{Name: name, Abbrev: abbrev, ValDesc: valDesc, OptType: OptionalValue, Desc: desc})
	return ap
}

// SupportsRequiredString adds support for a string argument that must be present for Parse to succeed.
func (ap *ArgParser) SupportsRequiredString(name, abbrev, valDesc, desc string) *ArgParser {
	ap.SupportOption(&Option{Name: name, Abbrev: abbrev, ValDesc: valDesc, OptType: RequiredValue, Desc: desc})
	return ap
}

// SupportsValidatedString adds support for a new string argument whose value is checked with validator.
func (ap *ArgParser) SupportsValidatedString(name, abbrev, valDesc, desc string, validator ValidationFunc) *ArgParser {
	ap.SupportOption(&Option{Name: name, Abbrev: abbrev, ValDesc: valDesc, OptType: OptionalValue, Desc: desc, Validator: validator})
	return ap
}

// optionNames returns the names and abbreviations of the options matching pred, longest first.
func (ap *ArgParser) optionNames(pred func(*Option) bool) []string {
	names := make([]string, 0, len(ap.nameOrAbbrevToOpt))
	for s, opt := range ap.nameOrAbbrevToOpt {
		if s != "" && pred(opt) {
			names = append(names, s)
		}
	}

	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	return names
}

func isFlag(opt *Option) bool {
	return opt.OptType == OptionalFlag
}

// matchFlags strips any number of flags from the front of arg, so that "-vf" sets both -v and -f. It stops as soon as
// what is left starts with the name of a value option.
func (ap *ArgParser) matchFlags(arg string) (matches []*Option, rest string) {
	rest = arg
	candidates := ap.optionNames(isFlag)
	valueOpts := ap.optionNames((*Option).takesValue)

	for {
		for _, vo := range valueOpts {
			if rest == vo || strings.HasPrefix(rest, vo+"=") {
				return matches, rest
			}
		}

		matched := -1
		for i, name := range candidates {
			if strings.HasPrefix(rest, name) {
				matched = i
				break
			}
		}

		if matched == -1 {
			return matches, rest
		}

		name := candidates[matched]
		rest = rest[len(name):]
		matches = append(matches, ap.nameOrAbbrevToOpt[name])
		candidates = append(candidates[:matched:matched], candidates[matched+1:]...)
	}
}

func (ap *ArgParser) matchValueOption(arg string, isLongForm bool) (match *Option, value *string) {
	for _, name := range ap.optionNames((*Option).takesValue) {
		if !strings.HasPrefix(arg, name) {
			continue
		}

		v := arg[len(name):]

		// a value glued to the option name is only allowed for the short form, so -d; works but --delim; does not
		if len(v) > 0 && !strings.ContainsAny(v[:1], optNameValDelimChars) && isLongForm {
			return nil, nil
		}

		v = strings.TrimLeft(v, optNameValDelimChars)
		if len(v) > 0 {
			value = &v
		}

		return ap.nameOrAbbrevToOpt[name], value
	}

	return nil, nil
}

// Parse parses the string args given using the configuration previously specified with calls to the various Supports*
// methods. Any unrecognized arguments or incorrect types will result in an appropriate error being returned. If the
// universal --help or -h flag is found, an ErrHelp error is returned.
func (ap *ArgParser) Parse(args []string) (*ArgParseResults, error) {
	positionalArgs := make([]string, 0, 16)
	namedArgs := make(map[string]string)
	onlyPositionalArgsLeft := false

	for index := 0; index < len(args); index++ {
		arg := args[index]

		// empty strings should get passed through like other naked words
		if len(arg) == 0 || arg[0] != '-' || onlyPositionalArgsLeft {
			positionalArgs = append(positionalArgs, arg)
			continue
		}

		if arg == "--" {
			onlyPositionalArgsLeft = true
			continue
		}

		var err error
		index, positionalArgs, err = ap.parseToken(args, index, positionalArgs, namedArgs)

		if err != nil {
			return nil, err
		}
	}

	if ap.MaxArgs != -1 && len(positionalArgs) > ap.MaxArgs {
		return nil, ap.TooManyArgsErrorFunc(positionalArgs)
	}

	for _, option := range ap.Supported {
		if option.OptType == RequiredValue {
			if _, ok := namedArgs[option.Name]; !ok {
				return nil, fmt.Errorf("option '%s' is required", option.Name)
			}
		}
	}

	return &ArgParseResults{options: namedArgs, Args: positionalArgs, parser: ap}, nil
}

func (ap *ArgParser) parseToken(args []string, index int, positionalArgs []string, namedArgs map[string]string) (int, []string, error) {
	arg := args[index]
	isLongForm := strings.HasPrefix(arg, "--")
	arg = strings.TrimLeft(arg, "-")

	if arg == helpFlag || arg == helpFlagAbbrev {
		return 0, nil, ErrHelp
	}

	flags, rest := ap.matchFlags(arg)
	for _, opt := range flags {
		if _, exists := namedArgs[opt.Name]; exists {
			return 0, nil, errors.New("error: multiple values provided for `" + opt.Name + "'")
		}

		namedArgs[opt.Name] = ""
	}

	opt, value := ap.matchValueOption(rest, isLongForm)
	if opt == nil {
		if rest == "" {
			return index, positionalArgs, nil
		}

		if len(flags) > 0 {
			// text attached to a run of flags is a positional argument, e.g. -ffile.csv
			return index, append(positionalArgs, rest), nil
		}

		return 0, nil, UnknownArgumentParam{name: arg}
	}

	if _, exists := namedArgs[opt.Name]; exists {
		return 0, nil, errors.New("error: multiple values provided for `" + opt.Name + "'")
	}

	if value == nil {
		next := index + 1
		if next >= len(args) {
			return 0, nil, errors.New("error: no value for option `" + opt.Name + "'")
		}

		value = &args[next]
		index = next
	}

	if opt.Validator != nil {
		if err := opt.Validator(*value); err != nil {
			return 0, nil, err
		}
	}

	namedArgs[opt.Name] = *value
	return index, positionalArgs, nil
}
