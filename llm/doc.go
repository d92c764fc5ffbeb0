// Package llm provides a provider-neutral abstraction layer for streaming
// AI completion backends.
//
// This package defines the common vocabulary, capability contract, and
// cross-cutting policies that let the rest of the codebase work with
// multiple backends (Anthropic, OpenAI, OpenRouter, Ollama, LM Studio)
// without being coupled to any backend's SDK or wire format.
//
// # Core Concepts
//
//  1. Messages: the Message type represents one conversation turn with a
//     role (user, assistant, system) and text content. The ordered slice of
//     messages is the conversation.
//
//  2. Provider contract: the Provider interface exposes StreamCompletion()
//     for streamed completions, ValidateKey() for a cheap authenticated
//     probe, and ListModels() for the backend's model catalog. Adapters in
//     the subpackages implement it.
//
//  3. Optional capabilities: adapters that support image features also
//     implement ImageUploader and/or ImageAnalyzer. Callers probe for them
//     with AsImageUploader()/AsImageAnalyzer(); absence means "unsupported",
//     never an error.
//
//  4. Streaming policy: RunStream() is the shared retry and classification
//     engine. It retries a call exactly once at the default temperature when
//     the model rejects the configured one, treats cancellation as a silent
//     success, and wraps every other failure into a single opaque Error so
//     raw transport errors never cross the adapter boundary.
//
//  5. Validation: ClassifyStatus() and ProbeEndpoint() implement the shared
//     status-code-only classification for API key probes. Validation and
//     catalog calls never fail; all outcomes are typed results.
//
// # Extension Points
//
// To add a new backend:
//  1. Implement the Provider interface in a new subpackage
//  2. Snapshot the Settings fields you need at construction time
//  3. Drive the streaming call through RunStream
//  4. Provide a non-empty fallback model list for ListModels
package llm
