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

package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/moltab/moltab/libraries/utils/argparser"
)

const helpWidth = 100

var underline = color.New(color.Underline)

func PrintHelpText(commandStr, shortDesc, longDesc string, synopsis []string, parser *argparser.ArgParser) {
	commandStr = embolden(commandStr)
	shortDesc = embolden(shortDesc)
	longDesc = embolden(longDesc)

	indent := "\t"

	Println(embolden("<b>NAME</b>"))
	Printf("%s%s - %s\n", indent, commandStr, shortDesc)

	if len(synopsis) > 0 {
		Println()
		Println(embolden("<b>SYNOPSIS</b>"))

		for _, curr := range synopsis {
			Printf(indent+"%s %s\n", underline.Sprint(commandStr), curr)
		}
	}

	Println()
	Println(embolden("<b>DESCRIPTION</b>"))
	Println(ToIndentedParagraph(longDesc, indent, helpWidth))

	if len(parser.Supported) > 0 || len(parser.ArgListHelp) > 0 {
		Println()
		Println(embolden("<b>OPTIONS</b>"))
		Println(OptionsUsage(parser, indent, helpWidth))
	}
}

func PrintUsage(commandStr string, synopsis []string, parser *argparser.ArgParser) {
	for i, curr := range synopsis {
		if i == 0 {
			PrintErrln("usage:", commandStr, curr)
		} else {
			PrintErrln("   or:", commandStr, curr)
		}
	}

	if len(parser.Supported) > 0 || len(parser.ArgListHelp) > 0 {
		PrintErrln()
		PrintErrln("Specific", commandStr, "options")
		PrintErrln(OptionsUsage(parser, "    ", helpWidth))
	}
}

const (
	boldStart    = "<b>"
	boldEnd      = "</b>"
	boldStartLen = len(boldStart)
	boldEndLen   = len(boldEnd)
)

var bold = color.New(color.Bold)

// embolden replaces <b>text</b> markup with bold text
func embolden(str string) string {
	var sb strings.Builder
	curr := str

	for {
		start := strings.Index(curr, boldStart)
		if start == -1 {
			break
		}

		end := strings.Index(curr[start+boldStartLen:], boldEnd)
		if end == -1 {
			break
		}

		end += start + boldStartLen
		sb.WriteString(curr[:start])
		sb.WriteString(bold.Sprint(curr[start+boldStartLen : end]))
		curr = curr[end+boldEndLen:]
	}

	sb.WriteString(curr)
	return sb.String()
}

func OptionsUsage(ap *argparser.ArgParser, indent string, lineLen int) string {
	var lines []string

	for _, usage := range OptionsUsageList(ap) {
		name, description := usage[0], usage[1]

		lines = append(lines, name)

		descLines := toParagraphLines(description, lineLen)
		descLines = indentLines(descLines, "  ")
		descLines = append(descLines, "")

		lines = append(lines, descLines...)
	}

	lines = indentLines(lines, indent)
	return strings.Join(lines, "\n")
}

// OptionsUsageList returns a pair of strings for each option/argument in ap, where the first string is the name of
// the option/argument and the second string is its description.
func OptionsUsageList(ap *argparser.ArgParser) [][2]string {
	res := [][2]string{}

	for _, help := range ap.ArgListHelp {
		res = append(res, [2]string{"<" + help[0] + ">", embolden(help[1])})
	}

	for _, supOpt := range ap.Supported {
		argHelpFmt := "--%[2]s"

		if supOpt.Abbrev != "" && supOpt.ValDesc != "" {
			argHelpFmt = "-%[1]s <%[3]s>, --%[2]s=<%[3]s>"
		} else if supOpt.Abbrev != "" {
			argHelpFmt = "-%[1]s, --%[2]s"
		} else if supOpt.ValDesc != "" {
			argHelpFmt = "--%[2]s=<%[3]s>"
		}

		nameFormatted := fmt.Sprintf(argHelpFmt, supOpt.Abbrev, supOpt.Name, supOpt.ValDesc)
		res = append(res, [2]string{nameFormatted, embolden(supOpt.Desc)})
	}

	return res
}

func ToIndentedParagraph(inStr, indent string, lineLen int) string {
	lines := toParagraphLines(inStr, lineLen)
	return strings.Join(indentLines(lines, indent), "\n")
}

func toParagraphLines(inStr string, lineLen int) []string {
	var lines []string
	for _, descLine := range strings.Split(inStr, "\n") {
		if len(descLine) == 0 {
			lines = append(lines, "")
			continue
		}

		lineIndent := ""
		for len(descLine) > 0 && (descLine[0] == ' ' || descLine[0] == '\t') {
			lineIndent += string(descLine[0])
			descLine = descLine[1:]
		}

		descLineLen := lineLen - len(lineIndent)
		for remaining := descLine; len(remaining) > 0; {
			if len(remaining) <= descLineLen {
				lines = append(lines, lineIndent+remaining)
				break
			}

			splitPt := strings.LastIndexAny(remaining[:descLineLen], " \t")
			if splitPt <= 0 {
				splitPt = descLineLen
				lines = append(lines, lineIndent+remaining[:splitPt])
				remaining = remaining[splitPt:]
			} else {
				lines = append(lines, lineIndent+remaining[:splitPt])
				remaining = remaining[splitPt+1:]
			}
		}
	}

	return lines
}

func indentLines(lines []string, indentation string) []string {
	indented := make([]string, len(lines))
	for i, s := range lines {
		indented[i] = indentation + s
	}

	return indented
}
