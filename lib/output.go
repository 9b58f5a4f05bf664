package lib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

type FormatType string

const (
	Pretty FormatType = "pretty"
	Text   FormatType = "text"
	JSON   FormatType = "json"
	YAML   FormatType = "yaml"
	Table  FormatType = "table"
)

var formatTypes = map[string]FormatType{
	string(Pretty): Pretty,
	string(Text):   Text,
	string(JSON):   JSON,
	string(YAML):   YAML,
	string(Table):  Table,
}

// Formattable is implemented by everything the CLI prints: reports, workspaces and history items
type Formattable interface {
	String() string
	Pretty() string
	TableHeaders() []string
	TableRow() []string
}

// FormatNames lists the accepted --format values
func FormatNames() []string {
	names := make([]string, 0, len(formatTypes))
	for name := range formatTypes {
		names = append(names, name)
	}
	return SortedCopy(names)
}

// ParseFormatType converts a --format value to a FormatType
func ParseFormatType(format string) (FormatType, error) {
	if formatType, ok := formatTypes[strings.ToLower(strings.TrimSpace(format))]; ok {
		return formatType, nil
	}
	return "", fmt.Errorf("unknown format %q, expected one of: %s", format, strings.Join(FormatNames(), ", "))
}

func encode(value any, format FormatType) (string, bool, error) {
	switch format {
	case JSON:
		data, err := json.MarshalIndent(value, "", "  ")
		return string(data), true, err
	case YAML:
		data, err := yaml.Marshal(value)
		return string(data), true, err
	}
	return "", false, nil
}

func renderTable(headers []string, rows [][]string) string {
	buffer := new(bytes.Buffer)
	table := tablewriter.NewWriter(buffer)
	if len(headers) > 0 {
		table.SetHeader(headers)
	}
	table.SetBorder(true)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
	return buffer.String()
}

// FormatOutput renders a list, one entry per line for text and pretty, a single table for table
func FormatOutput[T Formattable](data []T, format FormatType) (string, error) {
	if encoded, ok, err := encode(data, format); ok {
		if err != nil {
			return "", err
		}
		return encoded, nil
	}

	lines := make([]string, 0, len(data))
	switch format {
	case Text:
		for _, item := range data {
			lines = append(lines, item.String())
		}
	case Pretty:
		for _, item := range data {
			lines = append(lines, item.Pretty())
		}
	case Table:
		if len(data) == 0 {
			return "No results", nil
		}
		rows := make([][]string, 0, len(data))
		for _, item := range data {
			rows = append(rows, item.TableRow())
		}
		return renderTable(data[0].TableHeaders(), rows), nil
	default:
		return "", fmt.Errorf("unknown format: %v", format)
	}
	return strings.Join(lines, "\n"), nil
}

// FormatSingleOutput renders one item; json and yaml encode the item itself rather than a list
func FormatSingleOutput[T Formattable](data T, format FormatType) (string, error) {
	if encoded, ok, err := encode(data, format); ok {
		if err != nil {
			return "", err
		}
		return encoded, nil
	}
	return FormatOutput([]T{data}, format)
}
