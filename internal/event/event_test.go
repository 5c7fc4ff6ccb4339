package event

import (
	"encoding/json"
	"testing"

	"github.com/pixil98/go-testutil"
)

type capturingPublisher struct {
	subject string
	data    []byte
}

func (p *capturingPublisher) Publish(subject string, data []byte) error {
	p.subject = subject
	p.data = data
	return nil
}

func TestEmit(t *testing.T) {
	pub := &capturingPublisher{}

	err := Emit(pub, "region-hollow", "wave-active", map[string]int{"wave": 3})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	testutil.AssertEqual(t, "subject", pub.subject, "region-hollow")

	var env Envelope
	if err := json.Unmarshal(pub.data, &env); err != nil {
		t.Fatalf("unmarshalling envelope: %v", err)
	}
	testutil.AssertEqual(t, "type", env.Type, "wave-active")

	var data map[string]int
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("unmarshalling data: %v", err)
	}
	testutil.AssertEqual(t, "wave", data["wave"], 3)
}

func TestEmit_NilPublisher(t *testing.T) {
	if err := Emit(nil, "region-hollow", "wave-active", nil); err != nil {
		t.Fatalf("emit with nil publisher: %v", err)
	}
}

func TestSubjects(t *testing.T) {
	testutil.AssertEqual(t, "region", RegionSubject("hollow"), "region-hollow")
	testutil.AssertEqual(t, "session", SessionSubject("abc"), "session-abc")
}
