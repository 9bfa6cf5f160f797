package assetname

import "fmt"

// Message is a user-facing validation failure in both languages the
// editor ships. Validators return nil for valid names and a Message for
// the first violated rule; they never panic on user input.
type Message struct {
	En string
	Zh string
}

// String returns the English text; the editor picks a language itself.
func (m Message) String() string { return m.En }

// In returns the text for a language tag ("zh" selects Chinese, anything
// else English).
func (m Message) In(langTag string) string {
	if langTag == "zh" {
		return m.Zh
	}
	return m.En
}

// Shared grammar-level messages, ordered by check precedence.
var (
	msgBlank = Message{
		En: "The name must not be blank",
		Zh: "名称不能为空",
	}
	msgTooLong = Message{
		En: "The name is too long (maximum is 100 characters)",
		Zh: "名称长度超出限制（最多 100 个字符）",
	}
	msgInvalidChars = Message{
		En: "Names can only contain Chinese or English characters, digits and underscores, and must not start with a digit",
		Zh: "名称只能包含中英文字符、数字和下划线，且不能以数字开头",
	}
	msgReserved = Message{
		En: "The name conflicts with a reserved keyword",
		Zh: "名称与保留关键字冲突",
	}
)

func spriteExists(name string) *Message {
	return &Message{
		En: fmt.Sprintf("Sprite %s already exists", name),
		Zh: fmt.Sprintf("精灵 %s 已存在", name),
	}
}

func soundExists(name string) *Message {
	return &Message{
		En: fmt.Sprintf("Sound %s already exists", name),
		Zh: fmt.Sprintf("声音 %s 已存在", name),
	}
}

func costumeExists(name string) *Message {
	return &Message{
		En: fmt.Sprintf("Costume %s already exists", name),
		Zh: fmt.Sprintf("造型 %s 已存在", name),
	}
}

func backdropExists(name string) *Message {
	return &Message{
		En: fmt.Sprintf("Backdrop %s already exists", name),
		Zh: fmt.Sprintf("背景 %s 已存在", name),
	}
}
