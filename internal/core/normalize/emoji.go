package normalize

import (
	"strings"

	"github.com/baditaflorin/go_sentiment_flow/pkg/social"
)

// emojiNames maps emoji code points to their textual descriptions, written
// as :name: tokens. The table covers the emoji that actually carry
// sentiment signal; unmapped emoji are dropped at the standard level
// rather than passed through as opaque code points.
var emojiNames = map[rune]string{
	0x1F600: ":grinning_face:",
	0x1F601: ":beaming_face_with_smiling_eyes:",
	0x1F602: ":face_with_tears_of_joy:",
	0x1F603: ":grinning_face_with_big_eyes:",
	0x1F604: ":grinning_face_with_smiling_eyes:",
	0x1F605: ":grinning_face_with_sweat:",
	0x1F606: ":grinning_squinting_face:",
	0x1F607: ":smiling_face_with_halo:",
	0x1F608: ":smiling_face_with_horns:",
	0x1F609: ":winking_face:",
	0x1F60A: ":smiling_face_with_smiling_eyes:",
	0x1F60B: ":face_savoring_food:",
	0x1F60D: ":smiling_face_with_heart_eyes:",
	0x1F60E: ":smiling_face_with_sunglasses:",
	0x1F60F: ":smirking_face:",
	0x1F610: ":neutral_face:",
	0x1F612: ":unamused_face:",
	0x1F614: ":pensive_face:",
	0x1F618: ":face_blowing_a_kiss:",
	0x1F61A: ":kissing_face_with_closed_eyes:",
	0x1F61C: ":winking_face_with_tongue:",
	0x1F61D: ":squinting_face_with_tongue:",
	0x1F61E: ":disappointed_face:",
	0x1F620: ":angry_face:",
	0x1F621: ":enraged_face:",
	0x1F622: ":crying_face:",
	0x1F624: ":face_with_steam_from_nose:",
	0x1F625: ":sad_but_relieved_face:",
	0x1F628: ":fearful_face:",
	0x1F629: ":weary_face:",
	0x1F62A: ":sleepy_face:",
	0x1F62B: ":tired_face:",
	0x1F62D: ":loudly_crying_face:",
	0x1F631: ":face_screaming_in_fear:",
	0x1F632: ":astonished_face:",
	0x1F633: ":flushed_face:",
	0x1F634: ":sleeping_face:",
	0x1F637: ":face_with_medical_mask:",
	0x1F641: ":slightly_frowning_face:",
	0x1F642: ":slightly_smiling_face:",
	0x1F643: ":upside_down_face:",
	0x1F644: ":face_with_rolling_eyes:",
	0x1F648: ":see_no_evil_monkey:",
	0x1F649: ":hear_no_evil_monkey:",
	0x1F64A: ":speak_no_evil_monkey:",
	0x1F64C: ":raising_hands:",
	0x1F64F: ":folded_hands:",
	0x1F389: ":party_popper:",
	0x1F38A: ":confetti_ball:",
	0x1F44D: ":thumbs_up:",
	0x1F44E: ":thumbs_down:",
	0x1F44F: ":clapping_hands:",
	0x1F4AA: ":flexed_biceps:",
	0x1F4A9: ":pile_of_poo:",
	0x1F4A4: ":zzz:",
	0x1F4A5: ":collision:",
	0x1F4AF: ":hundred_points:",
	0x1F494: ":broken_heart:",
	0x1F495: ":two_hearts:",
	0x1F496: ":sparkling_heart:",
	0x1F497: ":growing_heart:",
	0x1F499: ":blue_heart:",
	0x1F49A: ":green_heart:",
	0x1F49B: ":yellow_heart:",
	0x1F49C: ":purple_heart:",
	0x1F525: ":fire:",
	0x1F91D: ":handshake:",
	0x1F923: ":rolling_on_the_floor_laughing:",
	0x1F970: ":smiling_face_with_hearts:",
	0x1F971: ":yawning_face:",
	0x1F972: ":smiling_face_with_tear:",
	0x1F973: ":partying_face:",
	0x1F97A: ":pleading_face:",
	0x2764:  ":red_heart:",
	0x2639:  ":frowning_face:",
	0x263A:  ":smiling_face:",
	0x2B50:  ":star:",
	0x2728:  ":sparkles:",
	0x2705:  ":check_mark_button:",
	0x274C:  ":cross_mark:",
}

// demojize replaces each recognized emoji with its textual description.
// Variation selectors, joiners and skin-tone modifiers vanish with the
// emoji they decorate.
func demojize(text string) string {
	if !social.ContainsEmoji(text) {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if name, ok := emojiNames[r]; ok {
			sb.WriteString(name)
			continue
		}
		if social.IsEmoji(r) || isEmojiModifier(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// removeEmoji deletes every emoji rune along with modifiers.
func removeEmoji(text string) string {
	if !social.ContainsEmoji(text) {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if social.IsEmoji(r) || isEmojiModifier(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// isEmojiModifier covers skin tone modifiers, which trail the emoji they
// modify and mean nothing on their own.
func isEmojiModifier(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}
