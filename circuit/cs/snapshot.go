package cs

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/ronanh/intcomp"
	"golang.org/x/exp/slices"
)

// Snapshot is a CBOR-serializable summary of an R1CS's shape, used to check
// the determinism property required by spec §5 and tested by spec §8
// ("running the same sequence of API calls ... produces identical variable
// counts and constraint lists"): two snapshots compare equal iff their
// circuits have the same variable count, the same constraint count and the
// same set of public indices. The constraints' contents are not recorded, so
// circuits that differ only inside their constraints also compare equal.
type Snapshot struct {
	NbVariables   int
	NbConstraints int
	PublicSorted  []int
}

// TakeSnapshot captures r's current shape. Public indices are sorted (via
// golang.org/x/exp/slices) before comparison because EnforcePub call order is
// part of the witness-binding contract but not part of the structural
// fingerprint this snapshot is meant to check.
func TakeSnapshot(r *R1CS) Snapshot {
	pub := make([]int, len(r.public))
	for i, v := range r.public {
		pub[i] = int(v)
	}
	slices.Sort(pub)
	return Snapshot{
		NbVariables:   r.nbVariables,
		NbConstraints: len(r.constraints),
		PublicSorted:  pub,
	}
}

// Equal reports whether two snapshots describe circuits of identical shape.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.NbVariables == other.NbVariables &&
		s.NbConstraints == other.NbConstraints &&
		slices.Equal(s.PublicSorted, other.PublicSorted)
}

// Marshal encodes the snapshot via CBOR, for persisting a fingerprint
// alongside a compiled circuit artifact.
func (s Snapshot) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := cbor.NewEncoder(&buf)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("jubjub-zk/circuit/cs: encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalSnapshot decodes a snapshot previously produced by Marshal.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("jubjub-zk/circuit/cs: decode snapshot: %w", err)
	}
	return s, nil
}

// CompactVarRefs bit-packs a sequence of Var indices referenced by a single
// constraint family (e.g. all left-hand operands of a constraint batch) for
// compact storage, using ronanh/intcomp's integer compression. Large
// circuits repeat the same handful of variables across many constraints, so
// this shrinks far better than a flat int slice.
func CompactVarRefs(vars []Var) []uint32 {
	raw := make([]uint32, len(vars))
	for i, v := range vars {
		raw[i] = uint32(v)
	}
	return intcomp.CompressUint32(raw, nil)
}

// DecompactVarRefs reverses CompactVarRefs given the original element count.
func DecompactVarRefs(compressed []uint32, n int) []Var {
	raw := make([]uint32, n)
	intcomp.UncompressUint32(compressed, raw)
	out := make([]Var, n)
	for i, v := range raw {
		out[i] = Var(v)
	}
	return out
}
