package httpx

import "fmt"

func rootHandler(*Request) Outcome {
	return Respond(NewResponse(200))
}

// echoHandler answers /echo/<text> with <text> in its original case.
func echoHandler(r *Request) (Outcome, error) {
	s, ok := r.Segment(1)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s has no echo payload", ErrMalformedRequest, r.Path)
	}
	return Respond(TextResponse(200, s)), nil
}

func userAgentHandler(r *Request) Outcome {
	ua, ok := r.Header.Lookup("User-Agent")
	if !ok {
		return Terminal(TextResponse(400, "Missing User-Agent header"))
	}
	return Respond(TextResponse(200, ua))
}
