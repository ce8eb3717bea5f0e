package parser

import (
	"regexp"
	"strings"

	"github.com/movsmx/bbva-statement-extractor/internal/models"
)

// DebitoParser handles BBVA débito statement text.
//
// Débito statements spread one transaction over several lines:
//
//	02/ENE 03/ENE SPEI ENVIADO BANAMEX 1,500.00 10,250.75
//	PAGO TARJETA
//	Referencia: 0034567821
//
// A transaction starts at a header line (two DD/MMM dates), and every line
// until the next header is either a wrapped description fragment, a late
// amount line, or reference-number noise.
type DebitoParser struct{}

func (p *DebitoParser) AccountName() string {
	return "BBVA Débito"
}

// Header grammar: two DD/MMM date tokens, then the rest of the line.
var debitoHeaderPattern = regexp.MustCompile(`^(\d{2}/[A-Z]{3})\s+(\d{2}/[A-Z]{3})\s+(.*)`)

func (p *DebitoParser) Parse(lines []string) (*models.StatementInfo, error) {
	info := &models.StatementInfo{Account: models.AccountDebito}
	scrapeMetadata(info, lines)

	// Two states: seeking a header (cur == nil) and accumulating
	// continuation lines into the in-progress movement (cur != nil).
	var cur *pendingMovement
	for _, line := range lines {
		if m := debitoHeaderPattern.FindStringSubmatch(line); m != nil {
			if mov, ok := cur.seal(); ok {
				info.Movimientos = append(info.Movimientos, mov)
			}
			cur = startMovement(m[1], m[2], m[3])
			continue
		}
		cur.accumulate(line)
	}
	if mov, ok := cur.seal(); ok {
		info.Movimientos = append(info.Movimientos, mov)
	}

	return info, nil
}

// pendingMovement is the in-progress record between a header line and the
// next header. It is local to one Parse pass and never escapes unsealed.
type pendingMovement struct {
	mov   models.Movement
	parts []string
}

func startMovement(fechaOper, fechaLiq, tail string) *pendingMovement {
	p := &pendingMovement{
		mov: models.Movement{FechaOper: fechaOper, FechaCargo: fechaLiq},
	}
	if nums := FindAmounts(tail); len(nums) > 0 {
		p.assign(nums)
		tail = StripAmounts(tail)
	}
	if tail != "" {
		p.parts = append(p.parts, tail)
	}
	return p
}

// assign applies the column tie-break: a lone amount sits in the Abono
// column, while the first of several amounts is the Cargo (later tokens on
// the line are balance columns and are discarded).
func (p *pendingMovement) assign(nums []string) {
	if len(nums) == 1 {
		p.mov.Abono = ParseAmount(nums[0])
		return
	}
	p.mov.Cargo = ParseAmount(nums[0])
}

// accumulate folds a continuation line into the in-progress movement.
func (p *pendingMovement) accumulate(line string) {
	if p == nil {
		// Still seeking the first header; lines before it carry no movement.
		return
	}
	if line == "" || strings.Contains(strings.ToLower(line), "referencia") {
		return
	}

	nums := FindAmounts(line)
	switch {
	case len(nums) > 0 && p.mov.Cargo == nil && p.mov.Abono == nil:
		p.assign(nums)
	case len(nums) == 0:
		p.parts = append(p.parts, line)
	}
}

// seal finishes the movement: joins the description, applies the SPEI sign
// correction, and reports whether the record is complete enough to keep.
func (p *pendingMovement) seal() (models.Movement, bool) {
	if p == nil {
		return models.Movement{}, false
	}

	p.mov.Descripcion = strings.Join(p.parts, " ")

	// SPEI RECIBIDO is always a deposit, whichever column the statement
	// text visually aligned the amount under.
	if strings.Contains(strings.ToUpper(p.mov.Descripcion), "SPEI RECIBIDO") &&
		p.mov.Cargo != nil && p.mov.Abono == nil {
		p.mov.Abono, p.mov.Cargo = p.mov.Cargo, nil
	}

	if p.mov.Cargo == nil && p.mov.Abono == nil {
		return models.Movement{}, false
	}
	return p.mov, true
}
