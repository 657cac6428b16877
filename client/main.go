// Interactive console client for manual play against a running server.
//
// Commands:
//
//	create <player_id> [single|multi]
//	join <room_code> <player_id>
//	secret <entity_id>
//	ask <question_id>
//	answer <yes|no>
//	guess <entity_id>
//	rematch
//	leave
package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	MsgTypeCreateRoom     = 101
	MsgTypeJoinRoom       = 102
	MsgTypeLeaveRoom      = 103
	MsgTypeSelectSecret   = 104
	MsgTypeAskQuestion    = 105
	MsgTypeAnswerQuestion = 106
	MsgTypeMakeGuess      = 107
	MsgTypeRequestRematch = 108
)

// send frames and sends one packet: 2 bytes message ID, 2 bytes length,
// then the JSON payload.
func send(c *websocket.Conn, msgID uint16, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			if len(message) < 4 {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			msgID := binary.BigEndian.Uint16(message[0:2])
			log.Printf("<- RECV (ID: %d): %s", msgID, string(message[4:]))
		}
	}()

	go func() {
		<-interrupt
		log.Println("Interrupt received, closing connection.")
		err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("Write close error:", err)
		}
		select {
		case <-done:
		case <-time.After(time.Second):
		}
		os.Exit(0)
	}()

	log.Println("Connected. Type 'create <player_id> [single|multi]' to start.")

	reader := bufio.NewReader(os.Stdin)
	for {
		text, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(strings.TrimSpace(text))
		if len(fields) == 0 {
			continue
		}

		var sendErr error
		switch fields[0] {
		case "create":
			if len(fields) < 2 {
				log.Println("Usage: create <player_id> [single|multi]")
				continue
			}
			mode := "MULTI_PLAYER"
			if len(fields) > 2 && fields[2] == "single" {
				mode = "SINGLE_PLAYER"
			}
			sendErr = send(c, MsgTypeCreateRoom, map[string]string{
				"player_id":    fields[1],
				"display_name": fields[1],
				"mode":         mode,
			})
		case "join":
			if len(fields) < 3 {
				log.Println("Usage: join <room_code> <player_id>")
				continue
			}
			sendErr = send(c, MsgTypeJoinRoom, map[string]string{
				"room_code":    strings.ToUpper(fields[1]),
				"player_id":    fields[2],
				"display_name": fields[2],
			})
		case "secret":
			if len(fields) < 2 {
				log.Println("Usage: secret <entity_id>")
				continue
			}
			sendErr = send(c, MsgTypeSelectSecret, map[string]string{"entity_id": fields[1]})
		case "ask":
			if len(fields) < 2 {
				log.Println("Usage: ask <question_id>")
				continue
			}
			sendErr = send(c, MsgTypeAskQuestion, map[string]string{"question_id": fields[1]})
		case "answer":
			if len(fields) < 2 {
				log.Println("Usage: answer <yes|no>")
				continue
			}
			sendErr = send(c, MsgTypeAnswerQuestion, map[string]bool{"answer": fields[1] == "yes"})
		case "guess":
			if len(fields) < 2 {
				log.Println("Usage: guess <entity_id>")
				continue
			}
			sendErr = send(c, MsgTypeMakeGuess, map[string]string{"entity_id": fields[1]})
		case "rematch":
			sendErr = send(c, MsgTypeRequestRematch, map[string]bool{"wants_rematch": true})
		case "leave":
			sendErr = send(c, MsgTypeLeaveRoom, map[string]string{})
		case "quit", "exit":
			return
		default:
			log.Printf("Unknown command: %s", fields[0])
			continue
		}

		if sendErr != nil {
			log.Println("Write error:", sendErr)
			return
		}
		log.Printf("-> SENT: %s", fields[0])
	}
}
