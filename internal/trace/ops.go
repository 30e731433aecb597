package trace

import (
	"fmt"
	"strings"
	"time"
)

// operationPatterns holds realistic operation-name templates per service
// type. "{service}" is replaced with the cleaned service name, "{Service}"
// with its capitalized form.
var operationPatterns = map[string][]string{
	"rest": {
		"POST /api/{service}/process",
		"GET /api/{service}/status",
		"PUT /api/{service}/update",
		"POST /api/{service}/validate",
		"GET /api/{service}/health",
	},
	"grpc": {
		"{service}.{Service}Service/Process",
		"{service}.{Service}Service/Get",
		"{service}.{Service}Service/Update",
		"{service}.{Service}Service/Validate",
	},
	"event_driven": {
		"PUBLISH {service}.event.processed",
		"CONSUME {service}.event.received",
		"PUBLISH {service}.event.completed",
	},
	"graphql": {
		"QUERY {service}.query",
		"MUTATION {service}.mutate",
	},
	"batch": {
		"BATCH {service}.process_batch",
		"BATCH {service}.aggregate",
	},
}

// exceptionTypes is the fixed vocabulary of exception class names attached
// to error span events.
var exceptionTypes = []string{
	"ConnectionRefusedError",
	"TimeoutError",
	"ServiceUnavailableError",
	"CircuitBreakerOpenError",
}

// operationName picks and fills an operation-name template for the called
// service.
func (s *Synthesizer) operationName(serviceName, serviceType string) string {
	patterns, ok := operationPatterns[serviceType]
	if !ok {
		patterns = operationPatterns["rest"]
	}
	pattern := patterns[s.rng.Intn(len(patterns))]

	clean := strings.TrimSpace(strings.ReplaceAll(
		strings.ReplaceAll(strings.ToLower(serviceName), "service", ""), "-", ""))
	if clean == "" {
		clean = "default"
	}
	capitalized := strings.ToUpper(clean[:1]) + clean[1:]

	filled := strings.ReplaceAll(pattern, "{service}", clean)
	return strings.ReplaceAll(filled, "{Service}", capitalized)
}

// errorMessage draws a failure description from a fixed vocabulary of
// realistic infrastructure errors.
func (s *Synthesizer) errorMessage(serviceName string) string {
	messages := []string{
		fmt.Sprintf("Connection refused: %s:8080", serviceName),
		fmt.Sprintf("Timeout after 30000ms calling %s", serviceName),
		fmt.Sprintf("HTTP 503 Service Unavailable from %s", serviceName),
		fmt.Sprintf("Circuit breaker OPEN for %s", serviceName),
		fmt.Sprintf("HTTP 500 Internal Server Error from %s", serviceName),
		fmt.Sprintf("gRPC UNAVAILABLE: %s not responding", serviceName),
		fmt.Sprintf("Connection pool exhausted for %s", serviceName),
	}
	return messages[s.rng.Intn(len(messages))]
}

// clientAttributes builds the CLIENT span's attribute map for one hop.
func (s *Synthesizer) clientAttributes(toName, serviceType string, step Step, isError bool) map[string]any {
	port := 9092
	switch serviceType {
	case "rest":
		port = 8080
	case "grpc":
		port = 50051
	}

	attrs := map[string]any{
		"peer.service":     toName,
		"net.peer.name":    hostname(toName) + ".internal",
		"net.peer.port":    port,
		"flow.step_number": step.Number,
	}

	switch serviceType {
	case "rest":
		methods := []string{"POST", "GET", "PUT"}
		statusCode := 200
		if isError {
			codes := []int{500, 502, 503, 504}
			statusCode = codes[s.rng.Intn(len(codes))]
		}
		attrs["http.method"] = methods[s.rng.Intn(len(methods))]
		attrs["http.status_code"] = statusCode
		attrs["http.url"] = fmt.Sprintf("http://%s.internal:8080/api/process", strings.ToLower(toName))
	case "grpc":
		grpcStatus := 0
		if isError {
			grpcStatus = 14 // UNAVAILABLE
		}
		attrs["rpc.system"] = "grpc"
		attrs["rpc.service"] = toName + "Service"
		attrs["rpc.method"] = "Process"
		attrs["rpc.grpc.status_code"] = grpcStatus
	case "event_driven":
		attrs["messaging.system"] = "kafka"
		attrs["messaging.destination"] = strings.ToLower(toName) + ".events"
		attrs["messaging.operation"] = "publish"
	}

	return attrs
}

// serverAttributes builds the SERVER span's attribute map for one hop.
func (s *Synthesizer) serverAttributes(serviceType string, step Step, isError bool) map[string]any {
	attrs := map[string]any{
		"flow.step_number": step.Number,
	}

	switch serviceType {
	case "rest":
		statusCode := 200
		if isError {
			codes := []int{500, 502, 503}
			statusCode = codes[s.rng.Intn(len(codes))]
		}
		attrs["http.method"] = "POST"
		attrs["http.status_code"] = statusCode
		attrs["http.route"] = "/api/process"
		attrs["http.scheme"] = "http"
	case "grpc":
		grpcStatus := 0
		if isError {
			grpcStatus = 14
		}
		attrs["rpc.system"] = "grpc"
		attrs["rpc.grpc.status_code"] = grpcStatus
	}

	return attrs
}

// resourceAttributes builds the OTel resource map describing the service a
// span was emitted from.
func (s *Synthesizer) resourceAttributes(serviceName string, svc Service, environment string) map[string]any {
	version := svc.APIVersion
	if version == "" {
		version = "v1"
	}
	runtime := svc.Metadata["language"]
	if runtime == "" {
		runtime = "go"
	}

	return map[string]any{
		"service.name":           serviceName,
		"service.version":        version,
		"service.namespace":      "meshsim",
		"deployment.environment": environment,
		"host.name":              fmt.Sprintf("%s-%02d", hostname(serviceName), s.rng.Intn(5)+1),
		"os.type":                "linux",
		"process.runtime.name":   runtime,
		"telemetry.sdk.name":     "meshsim-synthetic",
		"telemetry.sdk.version":  "0.1.0",
	}
}

// spanEvents fabricates the SERVER span's event log: a request.received
// marker, then either an exception (on failure) or a request.processed
// marker.
func (s *Synthesizer) spanEvents(serviceName string, isError bool, base time.Time) []SpanEvent {
	events := []SpanEvent{{
		Name:       "request.received",
		Timestamp:  base.Add(millis(0.1)),
		Attributes: map[string]any{"service.name": serviceName},
	}}

	if isError {
		events = append(events, SpanEvent{
			Name:      "exception",
			Timestamp: base.Add(millis(s.uniform(5, 50))),
			Attributes: map[string]any{
				"exception.type":       exceptionTypes[s.rng.Intn(len(exceptionTypes))],
				"exception.message":    fmt.Sprintf("Failed to process request in %s", serviceName),
				"exception.stacktrace": fmt.Sprintf("%s/handler.go:42 +0x21f", hostname(serviceName)),
			},
		})
		return events
	}

	events = append(events, SpanEvent{
		Name:       "request.processed",
		Timestamp:  base.Add(millis(s.uniform(2, 20))),
		Attributes: map[string]any{"service.name": serviceName, "status": "ok"},
	})
	return events
}

// hostname lowercases a service name and dashes its spaces, yielding a
// plausible DNS label.
func hostname(serviceName string) string {
	return strings.ReplaceAll(strings.ToLower(serviceName), " ", "-")
}

// millis converts a float millisecond count to a time.Duration.
func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
