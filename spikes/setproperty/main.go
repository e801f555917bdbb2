package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol"
	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol/message"
)

func main() {
	if len(os.Args) != 4 {
		log.Fatal("usage: setproperty <peer-id> <property> <value>")
	}

	nc, err := nats.Connect(nats.DefaultURL)
	if err != nil {
		log.Fatal(err)
	}
	defer nc.Close()

	req := message.PropertySetRequest{
		Property: os.Args[2],
		Value:    os.Args[3],
	}
	requestData, err := json.Marshal(req)
	if err != nil {
		log.Fatal(err)
	}

	subject := agentcontrol.PropertySetSubject("default", os.Args[1])
	replyMsg, err := nc.Request(subject, requestData, 16*time.Second)
	if err != nil {
		log.Fatal(err)
	}

	rep := message.PropertyReply{}
	if err := json.Unmarshal(replyMsg.Data, &rep); err != nil {
		log.Fatal(err)
	}

	if rep.Status == message.ReplyStatusSuccess {
		fmt.Printf("%s=%v\n", rep.Property, rep.Value)
	} else {
		fmt.Printf("error:\n %s\n\n", rep.ErrorReason)
	}
}
