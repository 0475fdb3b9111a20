// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import "strings"

// csvHeader is the fixed two-column header of every dictionary export.
const csvHeader = "term,definition"

// dictionaryCSV converts "term; definition" lines into CSV. Lines without a
// ';' separator are dropped; surviving lines split on the first ';' only, so
// definitions may themselves contain semicolons. Fields are quoted in a
// single pass: a quote character inside a term or definition is not doubled.
func dictionaryCSV(text string) []byte {
	rows := []string{csvHeader}

	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, ";") {
			continue
		}
		parts := strings.SplitN(line, ";", 2)
		term := strings.TrimSpace(parts[0])
		definition := strings.TrimSpace(parts[1])
		rows = append(rows, `"`+term+`","`+definition+`"`)
	}

	return []byte(strings.Join(rows, "\n"))
}
