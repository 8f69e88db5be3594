package obj

import (
	"bufio"
	"io"
	"strings"
)

// continuation is the end-of-line marker joining a record with the next line.
const continuation = `\`

// record is a logical line: a keyword followed by whitespace separated
// fields. Line is the physical line number (1-based) the record starts at.
type record struct {
	Keyword string
	Fields  []string
	Line    int
}

// recordScanner splits a line-oriented stream into records. Blank lines
// are skipped.
type recordScanner struct {
	sc   *bufio.Scanner
	line int
	rec  record
	err  error
}

func newRecordScanner(r io.Reader) *recordScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &recordScanner{sc: sc}
}

// Next advances to the next record. It returns false at the end of input
// or on a read error, which is then available from Err.
func (rs *recordScanner) Next() bool {
	for rs.sc.Scan() {
		rs.line++
		fields := strings.Fields(rs.sc.Text())
		if len(fields) == 0 {
			continue
		}
		rs.rec = record{Keyword: fields[0], Line: rs.line}
		rs.rec.Fields = rs.joinContinued(fields[1:])
		return true
	}
	rs.err = rs.sc.Err()
	return false
}

// joinContinued drops a trailing continuation marker and appends the fields
// of the following physical line, for as long as lines end in a marker.
func (rs *recordScanner) joinContinued(fields []string) []string {
	for len(fields) > 0 && fields[len(fields)-1] == continuation {
		fields = fields[:len(fields)-1]
		if !rs.sc.Scan() {
			break // marker on last line of input
		}
		rs.line++
		fields = append(fields, strings.Fields(rs.sc.Text())...)
	}
	return fields
}

// Record returns the current record.
func (rs *recordScanner) Record() record {
	return rs.rec
}

// Err returns the first read error, if any.
func (rs *recordScanner) Err() error {
	return rs.err
}
