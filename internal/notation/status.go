package notation

import (
	"strconv"
	"strings"
)

// statusFieldCount 玩家状态记录的字段数，由旧协议固定，
// 字段数量和顺序都不得改动
const statusFieldCount = 10

// PlayerStatus 定义旧协议的玩家状态记录：
// 名字 ip 已玩局数 获胜局数 上局得分 总分 换座标志 保留位 聊天开关 就绪
type PlayerStatus struct {
	Name       string
	IP         string
	Games      int
	Won        int
	LastResult int
	Points     int
	Switch     bool
	Reserved   string
	Talk       bool
	Ready      bool
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Record 编码为 10 个空格分隔字段的状态记录
func (ps PlayerStatus) Record() string {
	reserved := ps.Reserved
	if reserved == "" {
		reserved = "0"
	}
	fields := [statusFieldCount]string{
		ps.Name,
		ps.IP,
		strconv.Itoa(ps.Games),
		strconv.Itoa(ps.Won),
		strconv.Itoa(ps.LastResult),
		strconv.Itoa(ps.Points),
		boolField(ps.Switch),
		reserved,
		boolField(ps.Talk),
		boolField(ps.Ready),
	}
	return strings.Join(fields[:], " ")
}

// ParsePlayerStatus 解析状态记录，字段数不符时解码失败
func ParsePlayerStatus(s string) (PlayerStatus, bool) {
	fields := strings.Fields(s)
	if len(fields) != statusFieldCount {
		return PlayerStatus{}, false
	}

	var (
		ps   PlayerStatus
		err  error
		ints [4]int
	)
	for i, f := range []string{fields[2], fields[3], fields[4], fields[5]} {
		if ints[i], err = strconv.Atoi(f); err != nil {
			return PlayerStatus{}, false
		}
	}

	ps.Name = fields[0]
	ps.IP = fields[1]
	ps.Games, ps.Won, ps.LastResult, ps.Points = ints[0], ints[1], ints[2], ints[3]
	ps.Switch = fields[6] == "1"
	ps.Reserved = fields[7]
	ps.Talk = fields[8] == "1"
	ps.Ready = fields[9] == "1"
	return ps, true
}
