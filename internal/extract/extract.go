// Package extract saca candidatos de contract addresses de texto libre.
//
// Dos patrones léxicos independientes: la forma EVM (0x + 40 hex) y la forma
// base-58 de 43-44 caracteres. No se valida checksum ni existencia on-chain;
// los falsos positivos se filtran aguas abajo con el scoring.
package extract

import (
	"iter"
	"regexp"

	"github.com/mitegun/snipebot/internal/domain"
)

var (
	evmPattern = regexp.MustCompile(`0x[0-9a-fA-F]{40}`)
	// Alfabeto base-58: sin 0, O, I, l.
	solPattern = regexp.MustCompile(`[1-9A-HJ-NP-Za-km-z]{43,44}`)
)

// Addresses devuelve la secuencia lazy de candidatos encontrados en el texto:
// primero los matches EVM en orden de aparición, después los base-58, igual que
// la concatenación de los dos escaneos. Los duplicados se preservan; la
// secuencia es finita y reiniciable. Sin matches produce secuencia vacía.
func Addresses(text, source string) iter.Seq[domain.Candidate] {
	return func(yield func(domain.Candidate) bool) {
		if !scan(text, source, evmPattern, domain.ChainEVM, yield) {
			return
		}
		scan(text, source, solPattern, domain.ChainSOL, yield)
	}
}

// scan emite los matches de un patrón en orden posicional.
// Devuelve false si el consumidor cortó la iteración.
func scan(text, source string, re *regexp.Regexp, chain domain.Chain, yield func(domain.Candidate) bool) bool {
	rest := text
	for {
		loc := re.FindStringIndex(rest)
		if loc == nil {
			return true
		}
		cand := domain.Candidate{
			Address: rest[loc[0]:loc[1]],
			Chain:   chain,
			Source:  source,
		}
		if !yield(cand) {
			return false
		}
		rest = rest[loc[1]:]
	}
}

// Unique filtra la secuencia dejando la primera aparición de cada address,
// preservando el orden. Es la forma que consume el pipeline: un candidato
// repetido en el mismo texto no se evalúa dos veces.
func Unique(seq iter.Seq[domain.Candidate]) iter.Seq[domain.Candidate] {
	return func(yield func(domain.Candidate) bool) {
		seen := make(map[string]struct{})
		for cand := range seq {
			if _, ok := seen[cand.Address]; ok {
				continue
			}
			seen[cand.Address] = struct{}{}
			if !yield(cand) {
				return
			}
		}
	}
}
