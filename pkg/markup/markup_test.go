package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLineKinds(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Node
	}{
		{"Heading level 1", "# Muro de contención", Node{Kind: Heading1, Text: "Muro de contención"}},
		{"Heading level 2", "## Normatividad Aplicable", Node{Kind: Heading2, Text: "Normatividad Aplicable"}},
		{"Level 3 folded", "### Detalle", Node{Kind: Emphasis, Text: "Detalle"}},
		{"Level 5 folded", "##### Nota", Node{Kind: Emphasis, Text: "Nota"}},
		{"Indented level 3", "   ###Sub", Node{Kind: Emphasis, Text: "Sub"}},
		{"Numbered with colon", "1. Resistencia: 21 MPa (NSR-10)", Node{Kind: NumberedItem, Label: "1. Resistencia:", Body: " 21 MPa (NSR-10)"}},
		{"Numbered splits at first colon", "2. Hora: 10:30", Node{Kind: NumberedItem, Label: "2. Hora:", Body: " 10:30"}},
		{"Numbered without colon", "  12. Curado del concreto  ", Node{Kind: NumberedItem, Label: "12. Curado del concreto"}},
		{"Numbered with emphasis", "3. **Encofrado:** madera", Node{Kind: NumberedItem, Label: "3. Encofrado:", Body: " madera"}},
		{"Numbered after no-break space", "1.\u00a0Paso: excavar", Node{Kind: NumberedItem, Label: "1.\u00a0Paso:", Body: " excavar"}},
		{"Level 3 with no-break space", "###\u00a0Nota", Node{Kind: Emphasis, Text: "Nota"}},
		{"Asterisk bullet", "* Cemento tipo I", Node{Kind: Bullet, Text: "Cemento tipo I"}},
		{"Dash bullet", "- Arena lavada", Node{Kind: Bullet, Text: "Arena lavada"}},
		{"Blank", "", Node{Kind: Blank}},
		{"Whitespace only", " \t ", Node{Kind: Blank}},
		{"Paragraph", "El concreto debe curarse siete días.", Node{Kind: Paragraph, Text: "El concreto debe curarse siete días."}},
		{"Bold stripped paragraph", "Use **acero** corrugado", Node{Kind: Paragraph, Text: "Use acero corrugado"}},
		{"Hash without space", "#Etiqueta", Node{Kind: Paragraph, Text: "#Etiqueta"}},
		{"Number without dot space", "2024 fue un año", Node{Kind: Paragraph, Text: "2024 fue un año"}},
		{"Indented bullet is paragraph", "  * sangría", Node{Kind: Paragraph, Text: "  * sangría"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := Render(tt.line)
			require.Len(t, nodes, 1)
			assert.Equal(t, tt.want, nodes[0])
		})
	}
}

func TestRenderKeepsOneNodePerLineInOrder(t *testing.T) {
	text := "# Título\n\n## Pasos\n1. Excavar: a mano\n* nota\nfin"

	nodes := Render(text)

	require.Len(t, nodes, 6)
	kinds := make([]Kind, len(nodes))
	for i, n := range nodes {
		kinds[i] = n.Kind
	}
	assert.Equal(t, []Kind{Heading1, Blank, Heading2, NumberedItem, Bullet, Paragraph}, kinds)
}

func TestRenderIsDeterministic(t *testing.T) {
	text := "# A\n1. b: c\n- d\n\ne"
	assert.Equal(t, Render(text), Render(text))
}

func TestRenderPlainLineRoundTrips(t *testing.T) {
	for _, line := range []string{"texto simple", "  sangría inicial", "a: b", "precio 3.5 MPa"} {
		nodes := Render(line)
		require.Len(t, nodes, 1)
		assert.Equal(t, Node{Kind: Paragraph, Text: line}, nodes[0])
	}
}

func TestRenderEmptyInput(t *testing.T) {
	assert.Equal(t, []Node{{Kind: Blank}}, Render(""))
}
