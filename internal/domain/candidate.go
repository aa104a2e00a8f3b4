package domain

// Chain identifica la forma léxica del address extraído.
type Chain string

const (
	// ChainEVM es la forma 0x + 40 caracteres hex.
	ChainEVM Chain = "evm"
	// ChainSOL es la forma base-58 de 43-44 caracteres.
	ChainSOL Chain = "sol"
)

// TextItem es un post crudo devuelto por el feed.
type TextItem struct {
	ID   string
	Text string
}

// Candidate es un address extraído, sin validar, pendiente de scoring.
// Es efímero: se descarta después de la evaluación salvo que sea aceptado.
type Candidate struct {
	Address string
	Chain   Chain
	Source  string // cuenta de la que salió el post
}
