package dimacs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Problem is a CNF formula read from DIMACS format. Variables are
// numbered from one; a clause lists literals, negative for a negated
// variable.
// see: https://logic.pdmi.ras.ru/~basolver/dimacs.html
type Problem struct {
	variables int
	clauses   [][]int
}

// Variables returns the number of variables the header declares.
func (p *Problem) Variables() int {
	return p.variables
}

// Clauses returns a copy of the problem's clauses.
func (p *Problem) Clauses() [][]int {
	clauses := make([][]int, len(p.clauses))
	for i, clause := range p.clauses {
		clauses[i] = append([]int(nil), clause...)
	}
	return clauses
}

var headerLine = regexp.MustCompile(`^p\s+cnf\s+\d+\s+\d+\s*$`)

// NewProblem parses a DIMACS formatted stream.
func NewProblem(r io.Reader) (*Problem, error) {
	var (
		headerSeen   bool
		numVariables int
		numClauses   int
		clauses      [][]int
		seen         = map[int]struct{}{}
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// ignore blank lines and comments
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}

		// parse header
		if strings.HasPrefix(line, "p") {
			if headerSeen {
				return nil, fmt.Errorf("invalid statement (%s): duplicate header", line)
			}
			if !headerLine.MatchString(line) {
				return nil, fmt.Errorf("invalid statement (%s): valid format is p cnf <variables> <clauses>", line)
			}
			fields := strings.Fields(line)
			var err error
			numVariables, err = strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("invalid number (%s) in statement (%s)", fields[2], line)
			}
			numClauses, err = strconv.Atoi(fields[3])
			if err != nil {
				return nil, fmt.Errorf("invalid number (%s) in statement (%s)", fields[3], line)
			}
			headerSeen = true
			continue
		}

		// collect clauses
		if !headerSeen {
			return nil, errors.New("invalid dimacs format: missing header 'p cnf <variables> <clauses>'")
		}
		clause, err := parseClause(line, numVariables, seen)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dimacs data: %w", err)
	}

	if !headerSeen || len(clauses) == 0 {
		return nil, errors.New("invalid format: no variables or clauses found")
	}
	if len(clauses) != numClauses {
		return nil, errors.New("invalid format: number of clauses in header differs from the total number of clauses")
	}
	if len(seen) != numVariables {
		return nil, errors.New("invalid format: number of variables in header differs from the total number of unique variables found in clauses")
	}

	return &Problem{variables: numVariables, clauses: clauses}, nil
}

func parseClause(line string, numVariables int, seen map[int]struct{}) ([]int, error) {
	fields := strings.Fields(line)
	if fields[len(fields)-1] != "0" {
		return nil, fmt.Errorf("invalid clause (%s): does not end with 0", line)
	}
	fields = fields[:len(fields)-1]
	if len(fields) == 0 {
		return nil, fmt.Errorf("invalid clause (%s): no literals", line)
	}

	clause := make([]int, 0, len(fields))
	for _, field := range fields {
		lit, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid clause (%s): %s is not a number", line, field)
		}
		if lit == 0 {
			return nil, fmt.Errorf("invalid clause (%s): 0 is not a valid literal", line)
		}
		v := lit
		if v < 0 {
			v = -v
		}
		if v > numVariables {
			return nil, fmt.Errorf("invalid clause (%s): %d is not a valid variable", line, lit)
		}
		seen[v] = struct{}{}
		clause = append(clause, lit)
	}
	return clause, nil
}
