// Package model defines the provider-agnostic language model contract used
// by the conversation loop: an ordered message sequence plus a response
// schema in, one raw structured response out. Sub-packages adapt the
// official OpenAI and Anthropic SDKs; ScriptedModel provides a deterministic
// double for tests and examples.
//
// Generate is a blocking call with no partial results. Parsing and schema
// validation of the returned text happen in the loop, not here, so a
// provider that cannot guarantee schema conformance still fails safely.
package model
