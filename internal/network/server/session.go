package server

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/palemoky/skat/internal/ai"
	"github.com/palemoky/skat/internal/config"
	"github.com/palemoky/skat/internal/game"
	"github.com/palemoky/skat/internal/game/card"
	"github.com/palemoky/skat/internal/network/protocol"
	"github.com/palemoky/skat/internal/network/server/storage"
	"github.com/palemoky/skat/internal/notation"
)

// cardCodes 把牌转成两字符牌码列表
func cardCodes(cards []card.Card) []string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = notation.CardCode(c)
	}
	return codes
}

// GameSession 驱动一局牌：把客户端请求翻译成引擎操作，
// 广播状态变化，超时后由电脑代打
type GameSession struct {
	table *Table
	cfg   *config.GameConfig

	mu    sync.Mutex
	game  *game.Game
	timer *time.Timer
	gen   int // 定时器代数，作废过期的超时回调

	dealRecord string // 开局时的发牌记谱，用于对局记录
}

// NewGameSession 创建会话，Start 之前不可用
func NewGameSession(table *Table, cfg *config.GameConfig) *GameSession {
	return &GameSession{table: table, cfg: cfg}
}

// Start 随机发牌并进入叫牌阶段
func (gs *GameSession) Start() {
	gs.start(nil)
}

// StartWithDeal 用给定的发牌开局，用于导入复盘牌局
func (gs *GameSession) StartWithDeal(deal card.Deal) {
	gs.start(&deal)
}

func (gs *GameSession) start(fixed *card.Deal) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	base := game.NewGame(gs.table.Dealer)
	var (
		g   *game.Game
		err error
	)
	if fixed != nil {
		g, err = base.DealFixed(*fixed)
	} else {
		g, err = base.Deal()
	}
	if err != nil {
		log.Printf("发牌失败: %v", err)
		return
	}

	gs.dealRecord = notation.DealString(card.Deal{
		Hands: g.Hands,
		Skat:  [2]card.Card{g.Skat[0], g.Skat[1]},
	})

	gs.table.broadcast(protocol.MustNewMessage(protocol.MsgGameStart, protocol.GameStartPayload{
		Players: gs.table.PlayerInfos(),
		Dealer:  g.Dealer,
	}))

	// 各自的手牌只发给本人
	for seat := 0; seat < tableSize; seat++ {
		hand := g.Hands[g.PositionOf(seat)]
		gs.table.sendTo(seat, protocol.MustNewMessage(protocol.MsgDealCards, protocol.DealCardsPayload{
			Cards: cardCodes(hand.Sorted(card.GameGrand)),
		}))
	}

	g, err = g.StartBidding()
	if err != nil {
		log.Printf("进入叫牌阶段失败: %v", err)
		return
	}
	gs.game = g
	gs.afterTransition()
}

// StateFor 给重连玩家拼当前牌局的恢复状态
func (gs *GameSession) StateFor(playerID string) *protocol.GameStateDTO {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.game == nil {
		return nil
	}
	p, ok := gs.positionOf(playerID)
	if !ok {
		return nil
	}

	g := gs.game
	dto := &protocol.GameStateDTO{
		State:    g.State.String(),
		Players:  gs.table.PlayerInfos(),
		Hand:     cardCodes(g.Hands[p].Sorted(card.GameGrand)),
		Declarer: -1,
	}
	if b := g.Bidding; b != nil {
		dto.CurrentBid = b.CurrentBid
		if b.Outcome == game.BidHasDeclarer {
			dto.CurrentBid = b.FinalBid
			dto.Declarer = g.SeatOf(b.Declarer)
		}
	}
	if g.Contract != nil {
		dto.Announcement = notation.Announcement{
			GameType:  g.Contract.GameType,
			Hand:      g.Contract.Hand,
			Ouvert:    g.Contract.Ouvert,
			Schneider: g.Contract.Schneider,
			Schwarz:   g.Contract.Schwarz,
		}.String()
	}
	if g.Tricks != nil {
		dto.TrickNumber = g.Tricks.TrickNum
		if g.Tricks.Current != nil {
			for _, pc := range g.Tricks.Current.Cards {
				dto.TrickCards = append(dto.TrickCards, notation.CardCode(pc.Card))
			}
		}
	}
	if active, ok := g.ActivePlayer(); ok {
		dto.CurrentTurn = gs.seatID(active)
	}
	return dto
}

// positionOf 玩家在本局中的座次
func (gs *GameSession) positionOf(playerID string) (game.Position, bool) {
	tp, ok := gs.table.player(playerID)
	if !ok || gs.game == nil {
		return 0, false
	}
	return gs.game.PositionOf(tp.Seat), true
}

// seatID 座次对应的玩家 ID
func (gs *GameSession) seatID(p game.Position) string {
	return gs.table.playerIDAt(gs.game.SeatOf(p))
}

// seatName 座次对应的玩家昵称
func (gs *GameSession) seatName(p game.Position) string {
	return gs.table.playerNameAt(gs.game.SeatOf(p))
}

// --- 客户端请求入口 ---

func (gs *GameSession) HandleBid(playerID string, value int) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	p, ok := gs.positionOf(playerID)
	if !ok {
		return game.ErrWrongState
	}
	return gs.doBid(p, value)
}

func (gs *GameSession) HandleHold(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	p, ok := gs.positionOf(playerID)
	if !ok {
		return game.ErrWrongState
	}
	return gs.doHold(p)
}

func (gs *GameSession) HandlePass(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	p, ok := gs.positionOf(playerID)
	if !ok {
		return game.ErrWrongState
	}
	return gs.doPass(p)
}

func (gs *GameSession) HandleTakeSkat(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	p, ok := gs.positionOf(playerID)
	if !ok {
		return game.ErrWrongState
	}
	return gs.doTakeSkat(p)
}

func (gs *GameSession) HandlePlayHand(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	p, ok := gs.positionOf(playerID)
	if !ok {
		return game.ErrWrongState
	}
	return gs.doPlayHand(p)
}

func (gs *GameSession) HandleDiscard(playerID string, codes [2]string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	p, ok := gs.positionOf(playerID)
	if !ok {
		return game.ErrWrongState
	}

	a, okA := notation.ParseCard(codes[0])
	b, okB := notation.ParseCard(codes[1])
	if !okA || !okB {
		return game.ErrInvalidDiscard
	}
	return gs.doDiscard(p, a, b)
}

func (gs *GameSession) HandleAnnounce(playerID, annStr string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	p, ok := gs.positionOf(playerID)
	if !ok {
		return game.ErrWrongState
	}

	ann, parsed := notation.ParseAnnouncement(annStr)
	if !parsed {
		return game.ErrWrongState
	}
	return gs.doAnnounce(p, ann.GameType, ann.Schneider, ann.Schwarz, ann.Ouvert)
}

func (gs *GameSession) HandlePlayCard(playerID, code string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	p, ok := gs.positionOf(playerID)
	if !ok {
		return game.ErrWrongState
	}

	c, parsed := notation.ParseCard(code)
	if !parsed {
		return game.ErrIllegalCard
	}
	return gs.doPlayCard(p, c)
}

// --- 引擎操作，调用方需持有 gs.mu ---

func (gs *GameSession) doBid(p game.Position, value int) error {
	ng, err := gs.game.PlaceBid(p, value)
	if err != nil {
		return err
	}
	gs.table.broadcast(protocol.MustNewMessage(protocol.MsgBidMade, protocol.BidMadePayload{
		PlayerID:   gs.seatID(p),
		PlayerName: gs.seatName(p),
		Value:      value,
	}))
	gs.game = ng
	gs.afterTransition()
	return nil
}

func (gs *GameSession) doHold(p game.Position) error {
	ng, err := gs.game.HoldBid(p)
	if err != nil {
		return err
	}
	gs.table.broadcast(protocol.MustNewMessage(protocol.MsgBidHeld, protocol.BidActionPayload{
		PlayerID:   gs.seatID(p),
		PlayerName: gs.seatName(p),
	}))
	gs.game = ng
	gs.afterTransition()
	return nil
}

func (gs *GameSession) doPass(p game.Position) error {
	ng, err := gs.game.PassBid(p)
	if err != nil {
		return err
	}
	gs.table.broadcast(protocol.MustNewMessage(protocol.MsgBidPassed, protocol.BidActionPayload{
		PlayerID:   gs.seatID(p),
		PlayerName: gs.seatName(p),
	}))
	gs.game = ng
	gs.afterTransition()
	return nil
}

func (gs *GameSession) doTakeSkat(p game.Position) error {
	skat := cardCodes(gs.game.Skat)
	ng, err := gs.game.PickUpSkat(p)
	if err != nil {
		return err
	}
	gs.game = ng

	// 底牌内容只发给声明者
	id := gs.seatID(p)
	gs.table.sendTo(gs.game.SeatOf(p), protocol.MustNewMessage(protocol.MsgSkatTaken, protocol.SkatTakenPayload{
		PlayerID: id,
		Skat:     skat,
	}))
	gs.table.broadcastExcept(id, protocol.MustNewMessage(protocol.MsgSkatTaken, protocol.SkatTakenPayload{
		PlayerID: id,
	}))

	gs.afterTransition()
	return nil
}

func (gs *GameSession) doPlayHand(p game.Position) error {
	ng, err := gs.game.PlayHand(p)
	if err != nil {
		return err
	}
	gs.game = ng
	gs.afterTransition()
	return nil
}

func (gs *GameSession) doDiscard(p game.Position, a, b card.Card) error {
	ng, err := gs.game.DiscardCards(p, a, b)
	if err != nil {
		return err
	}
	gs.game = ng
	gs.afterTransition()
	return nil
}

func (gs *GameSession) doAnnounce(p game.Position, gt card.GameType, schneider, schwarz, ouvert bool) error {
	ng, err := gs.game.AnnounceGame(p, gt, schneider, schwarz, ouvert)
	if err != nil {
		return err
	}
	gs.game = ng

	ann := notation.Announcement{
		GameType:  gt,
		Hand:      ng.HandGame,
		Ouvert:    ouvert,
		Schneider: schneider,
		Schwarz:   schwarz,
	}
	payload := protocol.GameAnnouncedPayload{
		PlayerID:     gs.seatID(p),
		PlayerName:   gs.seatName(p),
		Announcement: ann.String(),
	}
	if ouvert {
		payload.OuvertCards = cardCodes(ng.Hands[p])
	}
	gs.table.broadcast(protocol.MustNewMessage(protocol.MsgGameAnnounced, payload))

	gs.afterTransition()
	return nil
}

func (gs *GameSession) doPlayCard(p game.Position, c card.Card) error {
	prevCompleted := 0
	if gs.game.Tricks != nil {
		prevCompleted = len(gs.game.Tricks.Completed)
	}

	ng, err := gs.game.PlayCard(p, c)
	if err != nil {
		return err
	}
	gs.game = ng

	gs.table.broadcast(protocol.MustNewMessage(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		PlayerID:   gs.seatID(p),
		PlayerName: gs.seatName(p),
		Card:       notation.CardCode(c),
		CardsLeft:  len(ng.Hands[p]),
	}))

	if len(ng.Tricks.Completed) > prevCompleted {
		trick := ng.Tricks.Completed[len(ng.Tricks.Completed)-1]
		cards := make([]string, 0, len(trick.Cards))
		for _, pc := range trick.Cards {
			cards = append(cards, notation.CardCode(pc.Card))
		}
		gs.table.broadcast(protocol.MustNewMessage(protocol.MsgTrickWon, protocol.TrickWonPayload{
			TrickNumber: prevCompleted + 1,
			WinnerID:    gs.seatID(trick.Winner),
			WinnerName:  gs.seatName(trick.Winner),
			Cards:       cards,
			Points:      trick.Points(),
		}))
	}

	gs.afterTransition()
	return nil
}

// --- 状态推进 ---

// afterTransition 在每次成功的引擎操作后检视新状态：
// 发送回合通知、重置超时、推进不需要玩家输入的状态。
// 调用方需持有 gs.mu
func (gs *GameSession) afterTransition() {
	g := gs.game

	switch g.State {
	case game.StateBidding:
		b := g.Bidding
		gs.table.broadcast(protocol.MustNewMessage(protocol.MsgBidTurn, protocol.BidTurnPayload{
			PlayerID:   gs.seatID(b.ActivePlayer),
			CurrentBid: b.CurrentBid,
			CanHold:    !b.IsActiveBidding,
			Timeout:    gs.cfg.BidTimeout,
		}))
		gs.armTimer(gs.cfg.BidTimeoutDuration())

	case game.StatePickingUpSkat:
		gs.table.broadcast(protocol.MustNewMessage(protocol.MsgDeclarer, protocol.DeclarerPayload{
			PlayerID:   gs.seatID(g.Declarer),
			PlayerName: gs.seatName(g.Declarer),
			Seat:       g.SeatOf(g.Declarer),
			Bid:        g.Bidding.FinalBid,
		}))
		gs.armTimer(gs.cfg.BidTimeoutDuration())

	case game.StateDiscarding, game.StateDeclaring:
		gs.armTimer(gs.cfg.MoveTimeoutDuration())

	case game.StateTrickPlaying:
		if g.Tricks == nil {
			// 三家全弃：转入罗姆什局
			ng, err := g.SetupRamsch()
			if err != nil {
				log.Printf("进入罗姆什局失败: %v", err)
				return
			}
			gs.game = ng
			gs.table.broadcast(protocol.MustNewMessage(protocol.MsgRamschStart, nil))
			gs.afterTransition()
			return
		}
		gs.sendPlayTurn()
		gs.armTimer(gs.cfg.MoveTimeoutDuration())

	case game.StatePreliminaryGameEnd:
		ng, err := g.FinalizeGame()
		if err != nil {
			log.Printf("结算失败: %v", err)
			return
		}
		gs.game = ng
		gs.afterTransition()

	case game.StateGameOver:
		gs.stopTimer()
		gs.finishGame()
	}
}

// sendPlayTurn 广播出牌回合，合法牌只发给行动方
func (gs *GameSession) sendPlayTurn() {
	g := gs.game
	p, ok := g.ActivePlayer()
	if !ok {
		return
	}

	id := gs.seatID(p)
	gs.table.sendTo(g.SeatOf(p), protocol.MustNewMessage(protocol.MsgPlayTurn, protocol.PlayTurnPayload{
		PlayerID: id,
		Legal:    cardCodes(g.LegalMoves(p)),
		Timeout:  gs.cfg.MoveTimeout,
	}))
	gs.table.broadcastExcept(id, protocol.MustNewMessage(protocol.MsgPlayTurn, protocol.PlayTurnPayload{
		PlayerID: id,
		Timeout:  gs.cfg.MoveTimeout,
	}))
}

// --- 超时代打 ---

func (gs *GameSession) armTimer(d time.Duration) {
	gs.gen++
	gen := gs.gen
	gs.stopTimer()
	gs.timer = time.AfterFunc(d, func() { gs.onTimeout(gen) })
}

func (gs *GameSession) stopTimer() {
	if gs.timer != nil {
		gs.timer.Stop()
		gs.timer = nil
	}
}

func (gs *GameSession) onTimeout(gen int) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if gen != gs.gen || gs.game == nil {
		return
	}
	gs.autoPlay()
}

// autoPlay 替当前行动方走一步保守棋。调用方需持有 gs.mu
func (gs *GameSession) autoPlay() {
	g := gs.game
	p, ok := g.ActivePlayer()
	if !ok {
		return
	}

	var err error
	switch g.State {
	case game.StateBidding:
		err = gs.doPass(p)
	case game.StatePickingUpSkat:
		err = gs.doPlayHand(p)
	case game.StateDiscarding:
		a, b := ai.ChooseDiscards(g.Hands[p], ai.ChooseGameType(g.Hands[p]))
		err = gs.doDiscard(p, a, b)
	case game.StateDeclaring:
		err = gs.autoAnnounce(p)
	case game.StateTrickPlaying:
		c, found := ai.ChooseCard(g, p)
		if !found {
			return
		}
		err = gs.doPlayCard(p, c)
	default:
		return
	}
	if err != nil {
		log.Printf("代打失败（%s，状态 %s）: %v", p, g.State, err)
	}
}

// autoAnnounce 代打宣布：先按手牌挑玩法，叫牌值压不住时
// 依次退到其他玩法
func (gs *GameSession) autoAnnounce(p game.Position) error {
	hand := gs.game.Hands[p]
	candidates := []card.GameType{
		ai.ChooseGameType(hand),
		card.GameGrand, card.GameClubs, card.GameSpades,
		card.GameHearts, card.GameDiamonds, card.GameNull,
	}

	var lastErr error
	for _, gt := range candidates {
		if lastErr = gs.doAnnounce(p, gt, false, false, false); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

// --- 结算 ---

// finishGame 广播结果并持久化。调用方需持有 gs.mu
func (gs *GameSession) finishGame() {
	g := gs.game

	payload := protocol.GameOverPayload{Skat: cardCodes(g.Skat)}
	var scores [3]int // 按座次
	var winners [3]bool

	switch {
	case g.RamschResult != nil:
		r := g.RamschResult
		payload.Ramsch = true
		payload.Durchmarsch = r.Durchmarsch
		payload.Jungfrau = r.Jungfrau
		payload.Score = r.Score
		if r.Durchmarsch {
			payload.Won = true
			payload.WinnerID = gs.seatID(game.Position(r.Winner))
			scores[r.Winner] = r.Score
			for i := range winners {
				winners[i] = i == r.Winner
			}
		} else {
			payload.LoserID = gs.seatID(game.Position(r.Loser))
			scores[r.Loser] = r.Score
			for i := range winners {
				winners[i] = i != r.Loser
			}
		}

	case g.Result != nil:
		res := g.Result
		payload.DeclarerID = gs.seatID(g.Declarer)
		payload.Won = res.Won
		payload.Score = res.Score
		payload.GameValue = res.GameValue
		payload.Overbid = res.Overbid
		payload.Matadors = res.Matadors
		payload.DeclarerPoints = res.DeclarerPoints
		scores[g.Declarer] = res.Score
		for i := range winners {
			winners[i] = (game.Position(i) == g.Declarer) == res.Won
		}
	}

	gs.table.broadcast(protocol.MustNewMessage(protocol.MsgGameOver, payload))
	gs.persistResults(scores, winners)
	gs.table.endGame()
}

// persistResults 异步写对局记录和积分榜，然后广播最新积分
func (gs *GameSession) persistResults(scores [3]int, winners [3]bool) {
	srv := gs.table.server
	if srv == nil || srv.store == nil || srv.series == nil {
		return
	}

	g := gs.game
	record := &storage.GameRecord{
		Deal:     gs.dealRecord,
		Declarer: -1,
		PlayedAt: time.Now().Unix(),
	}
	if g.Contract != nil {
		record.Announcement = notation.Announcement{
			GameType:  g.Contract.GameType,
			Hand:      g.Contract.Hand,
			Ouvert:    g.Contract.Ouvert,
			Schneider: g.Contract.Schneider,
			Schwarz:   g.Contract.Schwarz,
		}.String()
		record.Declarer = g.SeatOf(g.Declarer)
		record.Bid = g.Bidding.FinalBid
	}
	if g.Result != nil {
		record.Score = g.Result.Score
		record.Won = g.Result.Won
	}

	type entry struct {
		id, name, ip string
		score        int
		won          bool
	}
	entries := make([]entry, 0, tableSize)
	for pos := range scores {
		p := game.Position(pos)
		id := gs.seatID(p)
		if id == "" {
			continue
		}
		e := entry{id: id, name: gs.seatName(p), score: scores[pos], won: winners[pos]}
		if c, ok := gs.table.player(id); ok {
			if client, isClient := c.Conn.(*Client); isClient {
				e.ip = client.IP
			}
		}
		entries = append(entries, e)
	}

	table := gs.table
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		for _, e := range entries {
			if err := srv.store.AppendGameRecord(ctx, e.id, record); err != nil {
				log.Printf("写对局记录失败: %v", err)
			}
			if err := srv.series.RecordGameResult(ctx, e.id, e.name, e.ip, e.score, e.won); err != nil {
				log.Printf("更新积分榜失败: %v", err)
			}
		}

		standings, err := srv.series.GetStandings(ctx, 10)
		if err != nil {
			log.Printf("读取积分榜失败: %v", err)
			return
		}
		records := make([]string, 0, len(standings))
		for _, ps := range standings {
			records = append(records, ps.Record())
		}
		table.broadcast(protocol.MustNewMessage(protocol.MsgStandings, protocol.StandingsPayload{
			Records: records,
		}))
	}()
}
