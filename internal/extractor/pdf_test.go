package extractor

import "testing"

func TestIsReadableText(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  bool
	}{
		{
			name: "statement text",
			pages: []string{
				"BBVA México Estado de Cuenta\nNo. de Cuenta 0123456789\nDetalle de Movimientos Realizados\n01/ENE 02/ENE PAGO SERVICIO 1,234.56",
			},
			want: true,
		},
		{
			name:  "too short",
			pages: []string{"cuenta"},
			want:  false,
		},
		{
			name: "garbage from identity-encoded fonts",
			pages: []string{
				"þÿ âÃ þÿ âÃ þÿ âÃ þÿ",
			},
			want: false,
		},
		{
			name: "readable but no statement vocabulary",
			pages: []string{
				"the quick brown fox jumps over the lazy dog again and again and again",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isReadableText(tt.pages); got != tt.want {
				t.Errorf("isReadableText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	pages := []string{
		"  BBVA MEXICO  \nNo. de Cuenta 0123456789\n",
		"01/ENE 02/ENE PAGO SERVICIO 1,234.56",
	}

	lines := splitLines(pages)
	want := []string{"BBVA MEXICO", "No. de Cuenta 0123456789", "", "01/ENE 02/ENE PAGO SERVICIO 1,234.56"}
	if len(lines) != len(want) {
		t.Fatalf("lines: got %d, want %d (%q)", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d]: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTextQualityAcceptsSpanish(t *testing.T) {
	q := textQuality([]string{"Descripción del movimiento Periodo Año"})
	if q < 0.99 {
		t.Errorf("textQuality = %f, want ~1.0 for Spanish text", q)
	}
}
