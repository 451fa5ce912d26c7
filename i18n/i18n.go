package i18n

import (
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
	"github.com/rs/zerolog/log"
)

var lang string

var translations = map[string]map[string]string{
	"Play": {
		"pt": "Iniciar",
		"es": "Iniciar",
		"ru": "Старт",
	},
	"Cancel": {
		"pt": "Cancelar",
		"es": "Cancelar",
		"ru": "Отмена",
	},
	"Get ready": {
		"pt": "Prepare-se",
		"es": "Prepárate",
		"ru": "Приготовьтесь",
	},
	"Flashing": {
		"pt": "Piscando",
		"es": "Parpadeando",
		"ru": "Мигает",
	},
	"Paste a shared link": {
		"pt": "Cole um link compartilhado",
		"es": "Pega un enlace compartido",
		"ru": "Вставьте полученную ссылку",
	},
	"Join": {
		"pt": "Entrar",
		"es": "Unirse",
		"ru": "Войти",
	},
	"Share": {
		"pt": "Compartilhar",
		"es": "Compartir",
		"ru": "Поделиться",
	},
	"Link copied to clipboard": {
		"pt": "Link copiado para a área de transferência",
		"es": "Enlace copiado al portapapeles",
		"ru": "Ссылка скопирована в буфер обмена",
	},
	"Share this link with the person you are looking for": {
		"pt": "Compartilhe este link com a pessoa que você procura",
		"es": "Comparte este enlace con la persona que buscas",
		"ru": "Отправьте эту ссылку тому, кого вы ищете",
	},
	"A link is already set up": {
		"pt": "Um link já está configurado",
		"es": "Ya hay un enlace configurado",
		"ru": "Ссылка уже настроена",
	},
	"That link is not valid": {
		"pt": "Esse link não é válido",
		"es": "Ese enlace no es válido",
		"ru": "Эта ссылка недействительна",
	},
	"About BlinkSync": {
		"pt": "Sobre o BlinkSync",
		"es": "Acerca de BlinkSync",
		"ru": "О BlinkSync",
	},
	"Close": {
		"pt": "Fechar",
		"es": "Cerrar",
		"ru": "Закрыть",
	},
}

func init() {
	// Check for override environment variable
	if forcedLang := strings.TrimSpace(os.Getenv("BLINKSYNC_LANG")); forcedLang != "" {
		log.Debug().Str("lang", forcedLang).Msg("BLINKSYNC_LANG override set")
		lang = forcedLang
		return
	}

	userLocales, err := locale.GetLocales()
	if err != nil {
		log.Debug().Msg("could not get user locale, defaulting to english")
		lang = "en"
		return
	}

	if len(userLocales) > 0 {
		loc := userLocales[0]
		if strings.HasPrefix(loc, "pt") {
			lang = "pt"
		} else if strings.HasPrefix(loc, "es") {
			lang = "es"
		} else if strings.HasPrefix(loc, "ru") {
			lang = "ru"
		} else {
			lang = "en"
		}
	} else {
		lang = "en"
	}
	log.Debug().Str("lang", lang).Msg("language detected")
}

func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

func GetLang() string {
	return lang
}
