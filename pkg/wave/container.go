package wave

// WaveContainer is the conventional waveform backend. The viewer only reads
// from it.
type WaveContainer interface {
	// RootScopes lists the top-level scopes in declaration order.
	RootScopes() []ScopeRef
	// ChildScopes lists the scopes nested directly below scope.
	ChildScopes(scope ScopeRef) []ScopeRef
	// VariablesInScope lists the non-parameter variables declared directly
	// in scope. Child scopes are not visited.
	VariablesInScope(scope ScopeRef) []VariableRef
	// ParametersInScope lists the parameters declared directly in scope.
	ParametersInScope(scope ScopeRef) []VariableRef
}

// TransactionContainer is the transaction/stream backend.
type TransactionContainer interface {
	// Streams lists all top-level streams in backend order.
	Streams() []Stream
	// StreamByID looks up one stream.
	StreamByID(id StreamID) (Stream, bool)
	// GeneratorByID looks up one generator.
	GeneratorByID(id GeneratorID) (Generator, bool)
}

// DataContainer is the loaded data: either waves or transactions, never
// both. The kind is fixed for the lifetime of the container.
type DataContainer struct {
	waves        WaveContainer
	transactions TransactionContainer
}

// Waves wraps a conventional waveform backend.
func Waves(c WaveContainer) *DataContainer {
	return &DataContainer{waves: c}
}

// Transactions wraps a transaction backend.
func Transactions(c TransactionContainer) *DataContainer {
	return &DataContainer{transactions: c}
}

// IsWaves reports whether the container holds conventional waveforms.
func (d *DataContainer) IsWaves() bool { return d != nil && d.waves != nil }

// IsTransactions reports whether the container holds transaction streams.
func (d *DataContainer) IsTransactions() bool { return d != nil && d.transactions != nil }

// AsWaves returns the waveform backend if that is what is loaded.
func (d *DataContainer) AsWaves() (WaveContainer, bool) {
	if d == nil || d.waves == nil {
		return nil, false
	}
	return d.waves, true
}

// AsTransactions returns the transaction backend if that is what is loaded.
func (d *DataContainer) AsTransactions() (TransactionContainer, bool) {
	if d == nil || d.transactions == nil {
		return nil, false
	}
	return d.transactions, true
}

// EmptyScopeFor returns the "nothing selected" active scope matching the
// container kind.
func (d *DataContainer) EmptyScopeFor() ScopeType {
	if d.IsTransactions() {
		return NewStreamScope(EmptyStreams(""))
	}
	return NewWaveScope(EmptyScope())
}
