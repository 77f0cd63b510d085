// Package providers implements the Generator interface for each supported
// LLM provider: OpenAI, Anthropic, and OpenRouter.
//
// OpenAI and OpenRouter share the openai-go chat completions client;
// OpenRouter only swaps the base URL. Anthropic's Messages API is called
// through resty. Each call is a single attempt: failures surface to the
// caller, which degrades the affected file's review instead of retrying.
//
// Use [New] to obtain a Generator from a Config.
package providers
