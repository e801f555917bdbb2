package message

import (
	"encoding/json"
	"testing"
)

func TestReplyStatusJSON(t *testing.T) {
	rep := PropertyReply{
		Status:   ReplyStatusSuccess,
		Property: "power",
		Value:    true,
	}

	data, err := json.Marshal(rep)
	if err != nil {
		t.Fatal(err)
	}

	var decoded PropertyReply
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Status != ReplyStatusSuccess {
		t.Errorf("status = %v", decoded.Status)
	}
	if decoded.Property != "power" {
		t.Errorf("property = %q", decoded.Property)
	}
}

func TestReplyStatusErrorString(t *testing.T) {
	data, err := json.Marshal(ReplyStatusError)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"ERROR"` {
		t.Errorf("marshalled as %s", data)
	}

	var status ReplyStatus
	if err := json.Unmarshal([]byte(`"ERROR"`), &status); err != nil {
		t.Fatal(err)
	}
	if status != ReplyStatusError {
		t.Errorf("status = %v", status)
	}
}
