package emotions

var builtinNames = map[Label]string{
	Angry:    "生气",
	Disgust:  "讨厌",
	Fear:     "恐惧",
	Happy:    "开心",
	Sad:      "伤心",
	Surprise: "惊喜",
	Neutral:  "平静",
	Pouty:    "噘嘴",
	Grimace:  "鬼脸",
}

var builtinTracks = map[Label]Track{
	Angry:   {File: "angry.mp3", Title: "致爱丽丝 - 贝多芬", Icon: "angry"},
	Disgust: {File: "disgust.mp3", Title: "River Flows In You - Yiruma", Icon: "disgust"},
	Fear:    {File: "fear.mp3", Title: "未闻花名 - Oturans", Icon: "fear"},
	Happy:   {File: "happy.mp3", Title: "LemonTree - Fool's Garden", Icon: "happy"},
	Sad:     {File: "sad.mp3", Title: "欢乐颂 - 贝多芬", Icon: "sad"},
}

var builtinLines = map[Label][LinesPerLabel]string{
	Angry: {
		"干什么那么生气？其实愤怒是双刃剑，人家是受伤，你自己也难受。为什么不平静下来呢？",
		"虽然你看起来在生气，但不带恶意。平静些，什么困难都可以解决的。",
		"生气可以，但你看到自己生气时的脸了吗？面目可憎！所以，不要生气，美才能回到你的脸上。",
		"啊，生气了，哈哈哈！你在生气，别人照样快乐。你吃亏了！",
		"啊哈，生气不好。生气有害于你的健康。保持不愠不怒，才有利于你的身体。长命百岁！",
	},
	Disgust: {
		"这么讨厌人家？不要吧，人家也有长处。看到人家的长处，才有利于你的进步。",
		"呦呦呦，不要那么骄傲好不好？讨厌人家，你就那么完美？快乐点吧。",
		"有点讨厌？是的，看到社会人不文明不道德的行为，人人厌恶。我们要提倡社会公德。向你致敬！",
		"这些人在公共场所不检点不光是你，我也厌恶。讨厌！",
		"厌恶可以有，但不能常有。保持平和，对人对己都有利。",
	},
	Fear: {
		"你看起来很不安。不要怕！事情并不是想象的那么坏，有时候等一等就会有转机。请保持冷静和智慧。",
		"怕了？不怕，有我呢！我们都在你身边，我们会保护你的。再说，警察也在不远处。",
		"怕？装的吧？你内心里并没有恐惧。看得出来，你在表演。",
		"怕是没有用的，任何时候，保持冷静的头脑，处事果断，一切困难和危险都可以解除的。",
		"你好像有点恐惧？我其实比你还紧张。没事，放宽心，一切都会好的。我就是这么鼓励自己的。",
	},
	Happy: {
		"你看起来很高兴，真好！好的心情，所有事都会顺利。继续快乐！",
		"你好快乐啊！我也被你感染了，也快乐起来。我们就一起傻笑吧！",
		"你在笑，好！再多烦恼，一笑蓼之，有一首歌叫“笑比哭好”，让我们一起哈哈大笑吧。",
		"快乐的心情对健康特别有利，可以美颜常驻，可以神清气爽，可以长命百岁。",
		"你真诚的笑很美，我们都欣赏你，羡慕你。生活是多么美好啊！",
	},
	Sad: {
		"怎么啦？心里难受吗？有什么委屈说出来，我们会帮助你的。",
		"感到伤心就哭出来，哭出来会好受很多。一切都会好的，要看到希望，看到未来。",
		"哭啦？为什么？这么伤心？不哭不哭不哭，好乖乖，笑一个。",
		"哦哟哟，好像挺伤心的，别装了！你挺会演戏啊，佩服你！",
		"不要伤心了，根本没事，你多心了。一切都好，你误会了。好了好了，笑一个！",
	},
	Surprise: {
		"很惊讶？不要觉得惊奇，就是这么精彩！为多彩的生活点赞！",
		"你感到惊讶，好啊！后面想不到的惊喜还多着呢，会接踵而来，让你乐不可支。",
		"你显得很惊讶，觉得不可思议。这就是奇迹，世界很精彩！",
		"你的惊讶是装的。其实你很清楚这是什么。也好，逗个乐吧。",
		"你的惊讶的表情，显得你很单纯，甚至有些天真。很可爱啊！",
	},
	Neutral: {
		"你的心情很平静，显示出你很有素养。心平气和，遇事不慌，这是有能力的表现。",
		"表面上你很平静，其实看得出来你想笑，装得有点不像。想笑就笑吧，不要这么绷着了，笑一个！",
		"平静的心情对健康有利，希望长期保持。",
		"看起来你没有什么表情，实际上你的内心波澜壮阔。胸有城府，含而不露，是个高人！",
		"你看起来平静，略带微笑，宽容，大度，睿智而有风度，是很受人尊敬的。",
	},
	Pouty: {
		"你撅起了嘴，撅得挺高，可以挂一个瓶子了。",
		"你撅嘴了，有点不高兴？哈哈！挺有趣。",
		"撅嘴代表你不满意。那请你说说，怎么样才能使你满意？我们按你的做。",
		"撅起嘴嘴，好可爱啊！再坚持一会儿，我来拍个照。",
		"撅嘴了？生气了？不要那么多气，大家都很爱你的。和大家一块儿快乐吧。",
	},
	Grimace: {
		"做鬼脸，啊啊，我好害怕！不要吓我好不好？我胆小。",
		"不要做鬼脸，好难看啊！不信你照照镜子，把你的形象都破坏了。",
		"鬼脸真吓人！以后别做了好吗？",
		"你在做鬼脸，是不是你刚才做了什么坏事，不好意思了？请从实招来！",
		"看起来你在做鬼脸，但我觉得你心里在笑。够调皮的！",
	},
}
