package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "malformed payload")
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)

		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	that.registerConnection(player.ID, conn)

	payloadResp := Payload{Player: player}

	if player.GameID != "" {
		game, gameErr := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
		if gameErr != nil {
			log.Error("failed to get game", "gameID", player.GameID, "error", gameErr)
		} else {
			payloadResp.Game = game
		}
	}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "player", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "malformed payload")
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	if payloadReq.Game == nil {
		log.Error("Game is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Game is required")
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	game, err := that.gameUseCase.GetOrCreateGame(ctx, payloadReq.Player.ID, payloadReq.Game.Type, string(payloadReq.Game.Difficulty))
	if err != nil {
		log.Error("failed to create or get game", "error", err)

		return that.sendErrorResponse(conn, msg.Action, "failed to create or get game")
	}

	if err = that.sendMessage(conn, msg.Action, Payload{Player: payloadReq.Player, Game: game}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("game is ready", "game", game.ID, "type", game.Type)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleJoinGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "malformed payload")
	}

	if payloadReq.Player == nil || payloadReq.Game == nil {
		log.Error("Player or Game is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player and Game are required")
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	game, err := that.gameUseCase.JoinGame(ctx, payloadReq.Game.ID, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to join game", "game", payloadReq.Game.ID, "error", err)

		return that.sendErrorResponse(conn, msg.Action, "failed to join game")
	}

	that.notifyPlayers(game, msg.Action)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "malformed payload")
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	if payloadReq.Cell == nil {
		log.Error("Cell is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Cell is required")
	}

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Cell)
	if err != nil {
		log.Error("failed to make turn", "player", payloadReq.Player.ID, "error", err)

		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	that.notifyPlayers(game, msg.Action)

	return nil
}

func (that *Server) handleNextRound(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNextRound")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "malformed payload")
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	game, err := that.gameUseCase.NextRound(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to start next round", "player", payloadReq.Player.ID, "error", err)

		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	that.notifyPlayers(game, msg.Action)

	return nil
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameState")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "malformed payload")
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to get game state", "player", payloadReq.Player.ID, "error", err)

		return that.sendErrorResponse(conn, msg.Action, "failed to get game state")
	}

	if err = that.sendMessage(conn, msg.Action, Payload{Player: payloadReq.Player, Game: game}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func decodePayload(msg *Message) (*Payload, error) {
	payload := &Payload{}

	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}
