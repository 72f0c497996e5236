package localization

// Message is a template keyed by language code, with {named} substitution
// placeholders consumed by (*Localization).Get.
type Message map[string]string

// Info messages describe normal pipeline progress; emitted unconditionally.
var Info = struct {
	TokenizationStart  Message
	TokenizationFinish Message
	ParsingStart       Message
	ParsingFinish      Message
	NodesCreated       Message
	JSONGenerated      Message
	SetSourceType      Message
	RouteProcessing    Message
	RouteAdded         Message
	TargetAdded        Message
	ProcessingStart    Message
	ProcessingFinish   Message
	ParsingRouteBlock  Message
}{
	TokenizationStart:  Message{"ru": "Начинаю токенизацию...", "en": "Starting tokenization..."},
	TokenizationFinish: Message{"ru": "Токенизация завершена. Создано токенов: {count}", "en": "Tokenization completed. Tokens created: {count}"},
	ParsingStart:       Message{"ru": "Начинаю синтаксический анализ...", "en": "Starting parsing..."},
	ParsingFinish:      Message{"ru": "Синтаксический анализ завершен. Создано узлов: {count}", "en": "Parsing completed. Nodes created: {count}"},
	NodesCreated:       Message{"ru": "Создано узлов: {count}", "en": "Nodes created: {count}"},
	JSONGenerated:      Message{"ru": "JSON сгенерирован. {count} целей", "en": "JSON generated. {count} targets"},
	SetSourceType:      Message{"ru": "Установлен тип источника: {type}", "en": "Source type set: {type}"},
	RouteProcessing:    Message{"ru": "Обработка маршрутов для цели: {target}", "en": "Processing routes for target: {target}"},
	RouteAdded:         Message{"ru": "Добавлен маршрут: {src} -> {dst}({type})", "en": "Route added: {src} -> {dst}({type})"},
	TargetAdded:        Message{"ru": "Добавлена цель: {value} (тип: {type})", "en": "Target added: {value} (type: {type})"},
	ProcessingStart:    Message{"ru": "=== Начало обработки DSL ===", "en": "=== DSL Processing Started ==="},
	ProcessingFinish:   Message{"ru": "=== Обработка DSL завершена ===", "en": "=== DSL Processing Completed ==="},
	ParsingRouteBlock:  Message{"ru": "Разбор блока маршрутов для {target}", "en": "Parsing route block for {target}"},
}

// Warning messages are emitted but never terminate compilation.
var Warning = struct {
	EmptyPipelineSegment     Message
	DirectMappingWithoutStar Message
}{
	EmptyPipelineSegment:     Message{"ru": "Предупреждение: Обнаружен пустой сегмент пайплайна", "en": "Warning: Empty pipeline segment detected"},
	DirectMappingWithoutStar: Message{"ru": "Предупреждение: похоже на вызов функции без '*': {segment}", "en": "Warning: looks like a function call missing '*': {segment}"},
}

// Error holds one template per diagnostic category, plus the generic
// wrappers (LinePrefix, Generic, Unknown) shared by every category.
var Error = struct {
	PipelineClosingBar      Message
	BracketMissing          Message
	FlowDirection           Message
	FinalType               Message
	VoidType                Message
	SyntaxSource            Message
	SyntaxTarget            Message
	SemanticTarget          Message
	SemanticRoutes          Message
	PipelineEmpty           Message
	InvalidType             Message
	UndefinedVar            Message
	InvalidVarUsage         Message
	SrcFieldAsVar           Message
	DuplicateFinalName      Message
	DuplicateTargetNameType Message
	DuplicateVar            Message
	ConditionMissingIf      Message
	ConditionMissingParen   Message
	ConditionEmptyExpr      Message
	ConditionMissingColon   Message
	ConditionInvalid        Message
	FunctionNotFound        Message
	FunctionConflict        Message
	FunctionFolderNotFound  Message
	VarsFolderNotFound      Message
	ExternalVarFileNotFound Message
	ExternalVarPathNotFound Message
	ExternalVarWrite        Message
	GlobalVarWrite          Message
	UndefinedGlobalVar      Message
	MissingTargetLang       Message
	UnsupportedTargetLang   Message
	UnknownPipelineSegment  Message
	FileNotFound            Message
	Unknown                 Message
	Generic                 Message
	LinePrefix              Message
}{
	PipelineClosingBar:      Message{"ru": "Закрывающая прямая черта пайплайна не найдена", "en": "Pipeline closing bar is missing"},
	BracketMissing:          Message{"ru": "Квадратная скобка определения сущности не найдена", "en": "Entity definition bracket is missing"},
	FlowDirection:           Message{"ru": "Символ направляющего потока не найден. Используйте ->, =>, - или >", "en": "Flow direction symbol is missing. Use ->, =>, - or >"},
	FinalType:               Message{"ru": "Финальный тип не задан или задан некорректно", "en": "Final type is not specified or incorrectly specified"},
	VoidType:                Message{"ru": "Пустое поле не может иметь тип", "en": "An empty field cannot have a type"},
	SyntaxSource:            Message{"ru": "Неверный синтаксис определения источника", "en": "Invalid source definition syntax"},
	SyntaxTarget:            Message{"ru": "Неверный синтаксис определения цели", "en": "Invalid target definition syntax"},
	SemanticTarget:          Message{"ru": "Ошибка в определении цели", "en": "Error in target definition"},
	SemanticRoutes:          Message{"ru": "Ошибка в определении маршрутов", "en": "Error in route definitions"},
	PipelineEmpty:           Message{"ru": "Пустой пайплайн обнаружен", "en": "Empty pipeline detected"},
	InvalidType:             Message{"ru": "Недопустимый тип данных: {data_type}", "en": "Invalid data type: {data_type}"},
	UndefinedVar:            Message{"ru": "Неопределенная переменная: ${var_name}", "en": "Undefined variable: ${var_name}"},
	InvalidVarUsage:         Message{"ru": "Недопустимое использование переменной ${var_name} (определена в этом же маршруте)", "en": "Invalid use of variable ${var_name} (defined on this same route)"},
	SrcFieldAsVar:           Message{"ru": "Поле ${var_name} является исходным полем другого маршрута, а не переменной", "en": "${var_name} is the src field of another route, not a variable"},
	DuplicateFinalName:      Message{"ru": "Повторяющееся конечное имя в блоке маршрутов: {name}", "en": "Duplicate final name within a route block: {name}"},
	DuplicateTargetNameType: Message{"ru": "Дублирующийся составной ключ цели: {key}", "en": "Duplicate target composite key: {key}"},
	DuplicateVar:            Message{"ru": "Глобальная переменная уже объявлена: {name}", "en": "Global variable already declared: {name}"},
	ConditionMissingIf:      Message{"ru": "ELSE без предшествующего IF", "en": "ELSE without a preceding IF"},
	ConditionMissingParen:   Message{"ru": "Отсутствует открывающая или закрывающая скобка условия", "en": "Missing opening or closing parenthesis in condition"},
	ConditionEmptyExpr:      Message{"ru": "Пустое логическое выражение в условии", "en": "Empty boolean expression in condition"},
	ConditionMissingColon:   Message{"ru": "Отсутствует двоеточие после условия", "en": "Missing colon after condition"},
	ConditionInvalid:        Message{"ru": "Недопустимое условное выражение: {message}", "en": "Invalid condition: {message}"},
	FunctionNotFound:        Message{"ru": "Функция не найдена: {func_name}", "en": "Function not found: {func_name}"},
	FunctionConflict:        Message{"ru": "Конфликт имён функций: {func_name} объявлена и в стандартной, и в пользовательской директории", "en": "Function name conflict: {func_name} is declared in both the standard and user directories"},
	FunctionFolderNotFound:  Message{"ru": "Директория функций не найдена: {folder}", "en": "Function directory not found: {folder}"},
	VarsFolderNotFound:      Message{"ru": "Директория внешних переменных не найдена: {folder}", "en": "External variables directory not found: {folder}"},
	ExternalVarFileNotFound: Message{"ru": "Файл внешних переменных не найден: {file}", "en": "External variable file not found: {file}"},
	ExternalVarPathNotFound: Message{"ru": "Путь не найден во внешней переменной: {path}", "en": "Path not found in external variable: {path}"},
	ExternalVarWrite:        Message{"ru": "Нельзя писать во внешнюю переменную: {name}", "en": "Cannot write to an external variable: {name}"},
	GlobalVarWrite:          Message{"ru": "Нельзя переопределить глобальную переменную: {name}", "en": "Cannot redefine a global variable: {name}"},
	UndefinedGlobalVar:      Message{"ru": "Неопределенная глобальная переменная: ${name}", "en": "Undefined global variable: ${name}"},
	MissingTargetLang:       Message{"ru": "Не найдена строка lang=<язык>", "en": "No lang=<language> line found"},
	UnsupportedTargetLang:   Message{"ru": "Неподдерживаемый целевой язык: {lang}", "en": "Unsupported target language: {lang}"},
	UnknownPipelineSegment:  Message{"ru": "Неизвестный сегмент пайплайна: {segment}", "en": "Unknown pipeline segment: {segment}"},
	FileNotFound:            Message{"ru": "Файл не найден: {file} {message}", "en": "File not found: {file} {message}"},
	Unknown:                 Message{"ru": "Неизвестная синтаксическая ошибка", "en": "Unknown syntax error"},
	Generic:                 Message{"ru": "Ошибка при обработке DSL: {message}", "en": "Error processing DSL: {message}"},
	LinePrefix:              Message{"ru": "Ошибка в строке {line_num}:", "en": "Error in line {line_num}:"},
}

// Hint holds the "possible solution" template per category.
var Hint = struct {
	AddClosingBar           Message
	CheckBrackets           Message
	UseFlowSymbol           Message
	SpecifyType             Message
	SourceSyntax            Message
	TargetSyntax            Message
	PipelineMustHaveContent Message
	SequentialPipelines     Message
	TargetDefinitionMissing Message
	RoutesMissing           Message
	VoidNoType              Message
	AllowedTypes            Message
	FuncAvailable           Message
	FuncConflict            Message
	VarsFolderNotFound      Message
	ExternalVarFileNotFound Message
	ExternalVarPathNotFound Message
	FileNotFound            Message
	Label                   Message
}{
	AddClosingBar:           Message{"ru": "Добавьте закрывающую вертикальную черту '|'", "en": "Add closing vertical bar '|'"},
	CheckBrackets:           Message{"ru": "Проверьте правильность открывающих и закрывающих скобок [field]", "en": "Check if brackets are properly opened and closed [field]"},
	UseFlowSymbol:           Message{"ru": "Используйте один из символов направления: ->, =>, -, >", "en": "Use one of the flow direction symbols: ->, =>, -, >"},
	SpecifyType:             Message{"ru": "Укажите тип в круглых скобках: [field](type)", "en": "Specify type in parentheses: [field](type)"},
	SourceSyntax:            Message{"ru": "Используйте source=type/name", "en": "Use source=type/name"},
	TargetSyntax:            Message{"ru": "Используйте target=type/value", "en": "Use target=type/value"},
	PipelineMustHaveContent: Message{"ru": "Пайплайн должен содержать хотя бы один символ между вертикальными чертами", "en": "Pipeline must contain at least one character between vertical bars"},
	SequentialPipelines:     Message{"ru": "Обнаружены последовательные пайплайны без данных между ними", "en": "Sequential pipelines detected without data between them"},
	TargetDefinitionMissing: Message{"ru": "Не найдено определение цели для маршрута {target}", "en": "Target definition not found for route {target}"},
	RoutesMissing:           Message{"ru": "Отсутствуют определения маршрутов (target:)", "en": "Route definitions are missing (target:)"},
	VoidNoType:              Message{"ru": "Пустое поле [] не может иметь тип; уберите (type)", "en": "An empty field [] cannot carry a type; remove (type)"},
	AllowedTypes:            Message{"ru": "Допустимые типы: {allowed_types}", "en": "Allowed types: {allowed_types}"},
	FuncAvailable:           Message{"ru": "Проверьте доступные функции в стандартной и пользовательской директориях", "en": "Check the available functions in the standard and user directories"},
	FuncConflict:            Message{"ru": "Переименуйте одну из конфликтующих функций", "en": "Rename one of the conflicting functions"},
	VarsFolderNotFound:      Message{"ru": "Убедитесь, что директория существует и доступна для чтения", "en": "Make sure the directory exists and is readable"},
	ExternalVarFileNotFound: Message{"ru": "Убедитесь, что файл .json существует в директории внешних переменных", "en": "Make sure the .json file exists in the external variables directory"},
	ExternalVarPathNotFound: Message{"ru": "Проверьте путь внутри JSON-файла", "en": "Check the path inside the JSON file"},
	FileNotFound:            Message{"ru": "Проверьте путь к файлу {file}", "en": "Check the path to file {file}"},
	Label:                   Message{"ru": "Возможное решение:", "en": "Possible solution:"},
}

// Debug messages only print when the compilation context enables debug mode.
var Debug = struct {
	TokenCreated      Message
	PipelineItemAdded Message
	RouteLineCreated  Message
	CommentIgnored    Message
}{
	TokenCreated:      Message{"ru": "Токен {type}: {value}", "en": "Token {type}: {value}"},
	PipelineItemAdded: Message{"ru": "Добавлен элемент пайплайна: {type} {value}", "en": "Pipeline item added: {type} {value}"},
	RouteLineCreated:  Message{"ru": "Создана строка маршрута: {src} -> ... -> {dst}", "en": "Route line created: {src} -> ... -> {dst}"},
	CommentIgnored:    Message{"ru": "Комментарий проигнорирован: {comment}", "en": "Comment ignored: {comment}"},
}
