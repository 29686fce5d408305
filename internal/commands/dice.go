package commands

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	tokenRegex = regexp.MustCompile(`(?i)(\d*d\d+|\d+|[+\-*/])`)
	diceRegex  = regexp.MustCompile(`(?i)^(\d*)d(\d+)$`)
)

const (
	maxDice  = 100
	maxSides = 1000
)

var (
	errEmptyFormula = errors.New("empty formula")
	errDanglingOp   = errors.New("operator without left operand")
	errDivideByZero = errors.New("division by zero")
)

type term struct {
	value int
	desc  string
	op    string
}

// Roll is an evaluated dice formula.
type Roll struct {
	Formula string
	Detail  string
	Total   int
}

// EvalFormula evaluates expressions such as "2d6+1d4*2-3". Multiplication
// and division bind tighter than addition and subtraction; division
// truncates.
func EvalFormula(formula string, intn func(int) int) (Roll, error) {
	formula = strings.ReplaceAll(formula, " ", "")
	tokens := tokenRegex.FindAllString(formula, -1)
	if len(tokens) == 0 {
		return Roll{}, errEmptyFormula
	}

	var terms []term
	op := "+"
	pendingOp := false
	for _, tok := range tokens {
		if isOp(tok) {
			op = tok
			pendingOp = true
			continue
		}
		val, desc, err := evalToken(tok, intn)
		if err != nil {
			return Roll{}, fmt.Errorf("`%s`: %w", tok, err)
		}
		terms = append(terms, term{value: val, desc: desc, op: op})
		op = "+"
		pendingOp = false
	}
	if pendingOp {
		return Roll{}, errDanglingOp
	}

	var merged []term
	for _, t := range terms {
		if t.op != "*" && t.op != "/" {
			merged = append(merged, t)
			continue
		}
		if len(merged) == 0 {
			return Roll{}, errDanglingOp
		}
		prev := &merged[len(merged)-1]
		if t.op == "/" {
			if t.value == 0 {
				return Roll{}, errDivideByZero
			}
			prev.value /= t.value
		} else {
			prev.value *= t.value
		}
		prev.desc = prev.desc + " " + t.op + " " + t.desc
	}

	total := 0
	var detail strings.Builder
	for i, t := range merged {
		if i > 0 {
			detail.WriteString(" " + t.op + " ")
		}
		detail.WriteString(t.desc)
		if t.op == "-" {
			total -= t.value
		} else {
			total += t.value
		}
	}
	return Roll{Formula: formula, Detail: detail.String(), Total: total}, nil
}

func isOp(tok string) bool {
	switch tok {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

func evalToken(tok string, intn func(int) int) (int, string, error) {
	m := diceRegex.FindStringSubmatch(tok)
	if m == nil {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return 0, "", errors.New("not a number")
		}
		return n, tok, nil
	}

	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return 0, "", errors.New("invalid dice count")
		}
		count = n
	}
	sides, err := strconv.Atoi(m[2])
	if err != nil || sides < 2 {
		return 0, "", errors.New("invalid dice sides")
	}
	if count > maxDice || sides > maxSides {
		return 0, "", fmt.Errorf("at most %d dice with %d sides", maxDice, maxSides)
	}

	sum := 0
	rolls := make([]string, count)
	for i := range rolls {
		r := intn(sides) + 1
		sum += r
		rolls[i] = strconv.Itoa(r)
	}
	return sum, fmt.Sprintf("`%s` [%s]", tok, strings.Join(rolls, ", ")), nil
}
