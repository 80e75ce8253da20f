package codegen

// baseStyles is prepended to the per-element style block of every artifact.
const baseStyles = `.stage {
  position: absolute;
  inset: 0;
  overflow: hidden;
}
`

// artifactSource is the artifact rendered for every template. It implements
// the OGraf lifecycle contract: load, dispose, playAction, stopAction,
// updateAction and customAction, each returning a promise that settles when
// the operation (including any slide transition) has completed. A superseded
// transition's promise is abandoned rather than resolved, so a late
// completion can never race a newer transition.
const artifactSource = `// Code generated by ograf-editor from template "[[.ManifestID]]" (version [[.Version]]). DO NOT EDIT.

const ELEMENTS = [[.ElementsJSON]];

const ANIMATION = [[.AnimationJSON]];

const STYLES = [[.StyleJSON]];

const TOKEN = /\{\{\s*([\w-]+)\s*\}\}/g;

function interpolate(text, data) {
  return text.replace(TOKEN, function (match, key) {
    return Object.prototype.hasOwnProperty.call(data, key) ? String(data[key]) : match;
  });
}

function offsetTransform(direction) {
  switch (direction) {
    case 'right':
      return 'translate(100%, 0)';
    case 'top':
      return 'translate(0, -100%)';
    case 'bottom':
      return 'translate(0, 100%)';
    default:
      return 'translate(-100%, 0)';
  }
}

class [[.ClassName]] extends HTMLElement {
  constructor() {
    super();
    this._data = {};
    this._root = null;
    this._stage = null;
    this._timer = null;
  }

  async load() {
    this._cancelTimer();
    this._data = {};
    if (!this._root) {
      this._root = this.attachShadow({ mode: 'open' });
    }
    this._root.innerHTML = '';
    const style = document.createElement('style');
    style.textContent = STYLES;
    this._root.appendChild(style);
    this._stage = null;
  }

  async dispose() {
    this._cancelTimer();
    this._data = {};
    this._stage = null;
    if (this._root) {
      this._root.innerHTML = '';
    }
  }

  async playAction(skipAnimation) {
    this._cancelTimer();
    const stage = this._renderStage();
    if (skipAnimation) {
      stage.style.transition = 'none';
      stage.style.transform = 'translate(0, 0)';
      return;
    }
    stage.style.transition = 'none';
    stage.style.transform = offsetTransform(ANIMATION.slideInDirection);
    void stage.offsetWidth; // flush so the next transform animates
    stage.style.transition = 'transform ' + ANIMATION.slideInDuration + 'ms ' + ANIMATION.slideInType;
    stage.style.transform = 'translate(0, 0)';
    await this._wait(ANIMATION.slideInDuration);
  }

  async stopAction(skipAnimation) {
    this._cancelTimer();
    if (!this._stage) {
      return;
    }
    if (skipAnimation) {
      this._clearStage();
      return;
    }
    const direction = ANIMATION.slideOutDirection || ANIMATION.slideInDirection;
    const stage = this._stage;
    stage.style.transition = 'transform ' + ANIMATION.slideOutDuration + 'ms ' + ANIMATION.slideOutType;
    stage.style.transform = offsetTransform(direction);
    await this._wait(ANIMATION.slideOutDuration);
    this._clearStage();
  }

  async updateAction(data) {
    Object.assign(this._data, data || {});
    if (this._stage) {
      this._applyContent(this._stage);
    }
  }

  async customAction(name, data) {
    if (name === 'slideIn') {
      return this.playAction(false);
    }
    if (name === 'slideOut') {
      return this.stopAction(false);
    }
    // unknown actions complete without effect
  }

  _renderStage() {
    if (this._stage) {
      return this._stage;
    }
    const stage = document.createElement('div');
    stage.className = 'stage';
    for (const el of ELEMENTS) {
      const node = document.createElement(el.type === 'image' ? 'img' : 'div');
      node.id = 'el-' + el.id;
      node.style.position = 'absolute';
      node.style.left = el.x + 'px';
      node.style.top = el.y + 'px';
      node.style.width = el.width + 'px';
      node.style.height = el.height + 'px';
      if (el.type === 'circle') {
        node.style.borderRadius = '50%';
      }
      stage.appendChild(node);
    }
    this._applyContent(stage);
    this._root.appendChild(stage);
    this._stage = stage;
    return stage;
  }

  _applyContent(stage) {
    for (const el of ELEMENTS) {
      if (!el.content) {
        continue;
      }
      const node = stage.querySelector('[id="el-' + el.id + '"]');
      if (!node) {
        continue;
      }
      const value = interpolate(el.content, this._data);
      if (el.type === 'image') {
        node.src = value;
      } else {
        node.textContent = value;
      }
    }
  }

  _clearStage() {
    if (this._stage) {
      this._stage.remove();
      this._stage = null;
    }
  }

  _cancelTimer() {
    if (this._timer !== null) {
      clearTimeout(this._timer);
      this._timer = null;
    }
  }

  _wait(ms) {
    return new Promise((resolve) => {
      this._timer = setTimeout(() => {
        this._timer = null;
        resolve();
      }, ms);
    });
  }
}

if (!customElements.get('[[.Tag]]')) {
  customElements.define('[[.Tag]]', [[.ClassName]]);
}

export default [[.ClassName]];
`
