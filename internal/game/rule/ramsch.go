package rule

// RamschResult 定义罗姆什局的结算结果：三家各自计墩分，
// 分最多者输。任何一家零分（处子）时输家罚分翻倍；
// 一家独得 120 分（全吃）时没有输家，该家得 120 分
type RamschResult struct {
	Points [3]int

	Loser  int // 输家座位序号，全吃时为 -1
	Winner int // 全吃者座位序号，无全吃时为 -1

	Jungfrau    bool // 处子：有人一分未得
	Durchmarsch bool // 全吃：有人独得 120 分

	Score int // 输家的罚分（负数），全吃时为 +120
}

// ScoreRamsch 按三家墩分结算罗姆什局。
// 分数并列最高时由靠前的座位（先手优先）承担
func ScoreRamsch(points [3]int) RamschResult {
	res := RamschResult{
		Points: points,
		Loser:  -1,
		Winner: -1,
	}

	for i, p := range points {
		switch {
		case p == 120:
			res.Durchmarsch = true
			res.Winner = i
		case p == 0:
			res.Jungfrau = true
		}
	}

	if res.Durchmarsch {
		res.Score = 120
		return res
	}

	loser, most := 0, points[0]
	for i := 1; i < len(points); i++ {
		if points[i] > most {
			loser, most = i, points[i]
		}
	}
	res.Loser = loser
	res.Score = -most
	if res.Jungfrau {
		res.Score *= 2
	}
	return res
}
