package domain

// TrustUnknown es el nivel de confianza cuando el provider de reputación
// no devolvió datos. La ausencia de datos nunca es fatal: degrada el report.
const TrustUnknown = "unknown"

// Reputation es el análisis social del provider de reputación.
// Known=false significa que el provider no respondió; los campos numéricos
// quedan en su mínimo y TrustLevel en "unknown".
type Reputation struct {
	Known          bool
	OverallScore   float64
	KnownFollowers int
	TrustLevel     string
}

// UnknownReputation devuelve la reputación por defecto cuando el provider falla.
func UnknownReputation() Reputation {
	return Reputation{TrustLevel: TrustUnknown}
}

// ScoreReport es el resultado compuesto del scoring de un candidato.
// ContractScore está en [0, 100]; 0 es el mínimo seguro ante fallo del provider.
type ScoreReport struct {
	Address       string
	ContractScore float64
	Reputation    Reputation
}

// Meets devuelve true si el score del contrato alcanza el umbral (inclusivo).
// La reputación es informativa: se loguea pero no decide.
func (r ScoreReport) Meets(minScore float64) bool {
	return r.ContractScore >= minScore
}
