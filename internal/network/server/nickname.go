package server

import (
	"fmt"
	"math/rand/v2"
)

var nicknameAdjectives = []string{
	"沉稳的", "大胆的", "狡猾的", "好运的", "冷静的",
	"急躁的", "神秘的", "老练的", "快乐的", "倔强的",
}

var nicknameNouns = []string{
	"声明者", "先手", "中手", "后手", "叫牌手",
	"猎人", "磨坊主", "牌友", "赌徒", "常胜军",
}

// GenerateNickname 生成随机昵称
func GenerateNickname() string {
	adj := nicknameAdjectives[rand.IntN(len(nicknameAdjectives))]
	noun := nicknameNouns[rand.IntN(len(nicknameNouns))]
	return fmt.Sprintf("%s%s%02d", adj, noun, rand.IntN(100))
}
