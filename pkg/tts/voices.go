package tts

// BaiduVoices maps friendly preset names to Baidu per values.
var BaiduVoices = map[string]string{
	"xiaomei":  "0",   // 度小美, standard female
	"xiaoyu":   "1",   // 度小宇, standard male
	"xiaoyao":  "3",   // 度逍遥, emotional male
	"yaya":     "4",   // 度丫丫, child
	"xiaojiao": "5",   // 度小娇, emotional female
	"miduo":    "103", // 度米朵
	"bowen":    "106", // 度博文
	"xiaotong": "110", // 度小童
	"xiaomeng": "111", // 度小萌
}

// ResolveBaiduVoice returns the per value for a preset name,
// or the input unchanged if it's already a per value.
func ResolveBaiduVoice(name string) string {
	if id, ok := BaiduVoices[name]; ok {
		return id
	}
	return name
}
