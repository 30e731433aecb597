package trace

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
)

// rootServiceName is the synthetic service the root span is attributed to.
const rootServiceName = "meshsim-flow-engine"

// engineVersion is stamped into root-span resource attributes.
const engineVersion = "0.1.0"

// Source resolves flows, their ordered steps, and service-directory entries.
// Implemented by the entity catalog; substituted with fixtures in tests.
type Source interface {
	Flow(id string) (Flow, bool)
	Flows() []Flow
	Steps(flowID string) []Step
	Service(id string) (Service, bool)
}

// Archive receives completed traces for retention. Implemented by the entity
// catalog's in-memory trace archive.
type Archive interface {
	SaveTrace(t *Trace)
}

// Synthesizer fabricates traces for flow executions.
//
// The generator is an explicit constructor parameter rather than a package
// global so determinism is structural: substitute a fixed-seed generator and
// repeated executions reproduce byte-identical traces (timestamps derive
// from one starting instant plus generator offsets).
//
// Not safe for concurrent use — the generator and execution counter are
// mutated without locking, matching the single-writer model of the rest of
// the engine.
type Synthesizer struct {
	rng        *rand.Rand
	source     Source
	archive    Archive
	logger     *slog.Logger
	start      time.Time
	executions int
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSource attaches the flow/service resolver used by the by-id wrappers.
func WithSource(src Source) Option {
	return func(s *Synthesizer) { s.source = src }
}

// WithArchive attaches a trace archive; every completed trace is handed to it.
func WithArchive(a Archive) Option {
	return func(s *Synthesizer) { s.archive = a }
}

// WithStartTime fixes the starting instant every execution derives its
// timestamps from. Without it each execution starts at the current wall
// clock — the only place the wall clock is ever consulted.
func WithStartTime(t time.Time) Option {
	return func(s *Synthesizer) { s.start = t }
}

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) { s.logger = logger }
}

// New creates a Synthesizer around the given seeded generator.
func New(rng *rand.Rand, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		rng:    rng,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExecConfig controls one execution.
type ExecConfig struct {
	// Environment tags every span's resource attributes. Empty means "prod".
	Environment string

	// InjectFailure makes exactly one hop fail.
	InjectFailure bool

	// FailureStep picks the failing hop. Negative values draw a uniformly
	// random step from the seeded generator. Ignored unless InjectFailure.
	FailureStep int
}

// Execute runs the hop state machine and returns the completed trace.
//
// Every hop produces a CLIENT span on the calling service and a SERVER span
// on the receiving one. The failing hop (if any) marks both spans ERROR and
// terminates the walk. A flow with zero steps is a hard caller error.
func (s *Synthesizer) Execute(flow Flow, steps []Step, services Directory, cfg ExecConfig) (*Trace, error) {
	if len(steps) == 0 {
		return nil, NewEmptyFlowError(flow.ID)
	}
	s.executions++

	environment := cfg.Environment
	if environment == "" {
		environment = "prod"
	}

	traceID := s.newTraceID()
	executionID := s.newExecutionID()

	base := s.start
	if base.IsZero() {
		base = time.Now().UTC()
	}

	sorted := make([]Step, len(steps))
	copy(sorted, steps)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	failAt := -1
	if cfg.InjectFailure {
		if cfg.FailureStep >= 0 {
			failAt = cfg.FailureStep
		} else {
			failAt = s.rng.Intn(len(sorted))
		}
	}

	rootSpanID := s.newSpanID()
	spans := make([]*Span, 0, 2*len(sorted))
	current := base
	status := StatusOK
	var stepErr *StepError

	for i, step := range sorted {
		fromSvc := services[step.FromServiceID]
		toSvc := services[step.ToServiceID]

		fromName := fromSvc.Name
		if fromName == "" {
			fromName = fmt.Sprintf("service-%d", i)
		}
		toName := toSvc.Name
		if toName == "" {
			toName = fmt.Sprintf("service-%d", i+1)
		}
		serviceType := toSvc.ServiceType
		if serviceType == "" {
			serviceType = "rest"
		}

		stepFails := failAt == i

		latency := s.simulateLatency(serviceType, stepFails)
		operation := s.operationName(toName, serviceType)

		clientStatus := StatusOK
		clientMessage := ""
		if stepFails {
			clientStatus = StatusError
			clientMessage = fmt.Sprintf("Error calling %s", toName)
		}

		clientStart := current
		clientEnd := clientStart.Add(millis(latency))
		client := &Span{
			TraceID:       traceID,
			SpanID:        s.newSpanID(),
			ParentSpanID:  rootSpanID,
			OperationName: operation,
			ServiceName:   fromName,
			ServiceType:   serviceType,
			Kind:          KindClient,
			StartTime:     clientStart,
			EndTime:       clientEnd,
			DurationNanos: int64(latency * 1e6),
			StatusCode:    clientStatus,
			StatusMessage: clientMessage,
			Attributes:    s.clientAttributes(toName, serviceType, step, stepFails),
			Resource:      s.resourceAttributes(fromName, fromSvc, environment),
		}

		// The server span nests inside the client span: it starts after the
		// request crosses the network and ends before the response does.
		networkDelay := s.uniform(0.5, 5.0)
		processing := latency - networkDelay*2
		if processing < 1 {
			processing = 1
		}
		serverStart := clientStart.Add(millis(networkDelay))
		serverEnd := serverStart.Add(millis(processing))

		serverMessage := ""
		if stepFails {
			serverMessage = s.errorMessage(toName)
		}
		server := &Span{
			TraceID:       traceID,
			SpanID:        s.newSpanID(),
			ParentSpanID:  client.SpanID,
			OperationName: operation,
			ServiceName:   toName,
			ServiceType:   serviceType,
			Kind:          KindServer,
			StartTime:     serverStart,
			EndTime:       serverEnd,
			DurationNanos: int64(processing * 1e6),
			StatusCode:    clientStatus,
			StatusMessage: serverMessage,
			Attributes:    s.serverAttributes(serviceType, step, stepFails),
			Events:        s.spanEvents(toName, stepFails, serverStart),
			Resource:      s.resourceAttributes(toName, toSvc, environment),
		}

		spans = append(spans, client, server)

		if stepFails {
			status = StatusError
			stepErr = &StepError{
				Step:        i,
				FromService: fromName,
				ToService:   toName,
				Error:       serverMessage,
			}
			// The flow ends here; remaining hops never execute.
			break
		}

		current = clientEnd.Add(millis(s.uniform(0.1, 2.0)))
	}

	// The root span wraps the earliest client start to the latest span end.
	end := base
	for _, sp := range spans {
		if sp.EndTime.After(end) {
			end = sp.EndTime
		}
	}
	totalDuration := end.Sub(base)

	flowName := flow.Name
	if flowName == "" {
		flowName = "unknown"
	}
	root := &Span{
		TraceID:       traceID,
		SpanID:        rootSpanID,
		ParentSpanID:  "",
		OperationName: "FLOW " + flowName,
		ServiceName:   rootServiceName,
		ServiceType:   "internal",
		Kind:          KindInternal,
		StartTime:     base,
		EndTime:       end,
		DurationNanos: totalDuration.Nanoseconds(),
		StatusCode:    status,
		Attributes: map[string]any{
			"flow.id":               flow.ID,
			"flow.name":             flow.Name,
			"flow.type":             flow.Type,
			"flow.steps_total":      len(sorted),
			"flow.steps_completed":  len(spans) / 2,
			"execution.id":          executionID,
			"execution.environment": environment,
		},
		Resource: map[string]any{
			"service.name":           rootServiceName,
			"service.version":        engineVersion,
			"deployment.environment": environment,
		},
	}

	all := make([]*Span, 0, len(spans)+1)
	all = append(all, root)
	all = append(all, spans...)

	result := &Trace{
		TraceID:     traceID,
		ExecutionID: executionID,
		FlowID:      flow.ID,
		FlowName:    flow.Name,
		Environment: environment,
		StartTime:   base,
		EndTime:     end,
		DurationMs:  round2(float64(totalDuration.Nanoseconds()) / 1e6),
		Status:      status,
		SpanCount:   len(all),
		Error:       stepErr,
		Spans:       all,
	}

	if s.archive != nil {
		s.archive.SaveTrace(result)
	}

	s.logger.Debug("flow executed",
		"flow_id", flow.ID,
		"trace_id", traceID,
		"span_count", result.SpanCount,
		"status", status)

	return result, nil
}

// ExecuteFlowByID resolves a flow, its steps, and its service directory from
// the configured source, then executes it. Missing source and unknown flow
// ids are hard errors; the caller named something specific.
func (s *Synthesizer) ExecuteFlowByID(flowID string, cfg ExecConfig) (*Trace, error) {
	if s.source == nil {
		return nil, NewNotConfiguredError("flow source")
	}

	flow, ok := s.source.Flow(flowID)
	if !ok {
		return nil, NewFlowNotFoundError(flowID)
	}

	steps := s.source.Steps(flowID)
	services := make(Directory)
	for _, step := range steps {
		for _, id := range []string{step.FromServiceID, step.ToServiceID} {
			if id == "" {
				continue
			}
			if _, seen := services[id]; seen {
				continue
			}
			if svc, found := s.source.Service(id); found {
				services[id] = svc
			}
		}
	}

	return s.Execute(flow, steps, services, cfg)
}

// ExecuteAll executes every flow the source knows about and returns the
// traces. Individual flow failures are logged and skipped — one bad flow
// must not sink a bulk run.
func (s *Synthesizer) ExecuteAll(cfg ExecConfig) ([]*Trace, error) {
	if s.source == nil {
		return nil, NewNotConfiguredError("flow source")
	}

	traces := make([]*Trace, 0)
	for _, flow := range s.source.Flows() {
		result, err := s.ExecuteFlowByID(flow.ID, cfg)
		if err != nil {
			s.logger.Warn("flow execution failed", "flow_id", flow.ID, "error", err)
			continue
		}
		traces = append(traces, result)
	}
	return traces, nil
}

// Executions returns how many flows this synthesizer has executed.
func (s *Synthesizer) Executions() int {
	return s.executions
}

// newTraceID derives a 32-hex-char (128-bit) trace id from the seeded
// generator, via a reader-backed UUIDv4 so the id space matches real
// OTel traces.
func (s *Synthesizer) newTraceID() string {
	id := uuid.Must(uuid.NewRandomFromReader(s.rng))
	return hex.EncodeToString(id[:])
}

// newSpanID derives a 16-hex-char (64-bit) span id from the seeded generator.
func (s *Synthesizer) newSpanID() string {
	return s.newTraceID()[:16]
}

// newExecutionID derives a hyphenated execution UUID from the seeded generator.
func (s *Synthesizer) newExecutionID() string {
	return uuid.Must(uuid.NewRandomFromReader(s.rng)).String()
}
